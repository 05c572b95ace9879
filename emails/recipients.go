package emails

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/storefront/models"
)

// Recipient is an addressee of a notification email
type Recipient struct {
	Name  string
	Email string
}

// AdminDirectory lists the site administrators to alert.
type AdminDirectory interface {
	AdminRecipients(ctx context.Context) ([]Recipient, error)
}

// StaticAdmins is an AdminDirectory backed by a fixed address list.
type StaticAdmins []string

func (s StaticAdmins) AdminRecipients(context.Context) ([]Recipient, error) {
	recipients := make([]Recipient, 0, len(s))
	for _, email := range s {
		recipients = append(recipients, Recipient{Name: "Admin", Email: email})
	}
	return recipients, nil
}

// AdminFinder is the user-store query behind UserAdmins.
type AdminFinder interface {
	FindAdmins(ctx context.Context) ([]models.User, error)
}

// UserAdmins resolves admins from users holding the admin role.
type UserAdmins struct {
	Users AdminFinder
}

func (u UserAdmins) AdminRecipients(ctx context.Context) ([]Recipient, error) {
	admins, err := u.Users.FindAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("load admin users: %w", err)
	}
	recipients := make([]Recipient, 0, len(admins))
	for _, a := range admins {
		if a.Email == "" {
			continue
		}
		recipients = append(recipients, Recipient{Name: a.Name, Email: a.Email})
	}
	return recipients, nil
}
