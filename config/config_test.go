package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("ADMIN_EMAILS", "")
	t.Setenv("MIRROR_PRODUCT_IMAGES", "")

	LoadConfig()

	assert.Equal(t, "mongodb://localhost:27017/", MongoURI)
	assert.Equal(t, "storefront", DBName)
	assert.Equal(t, "8080", Port)
	assert.Empty(t, AdminEmails)
	assert.False(t, MirrorProductImages)
}

func TestLoadConfigAdminEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " ops@example.com, ,cto@example.com ")
	t.Setenv("MIRROR_PRODUCT_IMAGES", "true")

	LoadConfig()

	assert.Equal(t, []string{"ops@example.com", "cto@example.com"}, AdminEmails)
	assert.True(t, MirrorProductImages)
}
