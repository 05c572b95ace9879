package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/raushankrgupta/storefront/config"
	"github.com/raushankrgupta/storefront/emails"
	"github.com/raushankrgupta/storefront/models"
	"github.com/raushankrgupta/storefront/repository"
	"github.com/raushankrgupta/storefront/services"
	"github.com/raushankrgupta/storefront/utils"
)

func ptr[T any](v T) *T { return &v }

func main() {
	config.LoadConfig()
	logger := utils.NewLogger(config.LogLevel)
	ctx := context.Background()

	client, err := utils.ConnectMongo(ctx, config.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer utils.DisconnectMongo(client)

	db := client.Database(config.DBName)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	stores := repository.NewStores(db)

	admin := &models.User{Name: "Catalog Admin", Email: "admin@storefront.local", Role: models.RoleAdmin, Status: "active"}
	if err := stores.Users.Insert(ctx, admin); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if config.JWTSecret != "" {
		token, err := utils.GenerateToken(config.JWTSecret, admin.ID.Hex())
		if err != nil {
			log.Fatalf("Failed to issue admin token: %v", err)
		}
		fmt.Printf("Admin token: %s\n", token)
	}
	shop := &models.Shop{Name: "Corner Goods", OwnerName: "Asha Rao", Email: "owner@cornergoods.local", Phone: "+91 98450 00000"}
	if err := stores.Shops.Insert(ctx, shop); err != nil {
		log.Fatalf("Failed to seed shop: %v", err)
	}

	mailer := &utils.SendGridMailer{
		APIKey:    config.SendGridAPIKey,
		FromName:  config.EmailFromName,
		FromEmail: config.EmailFromAddress,
		Logger:    logger,
	}
	notifier := emails.NewOutOfStockNotifier(mailer, emails.UserAdmins{Users: stores.Users}, logger)
	products := services.NewProductManager(stores.Products, stores.Shops, notifier, logger)
	defer products.Drain()

	drafts := []models.ProductDraft{
		{
			Name: "Wireless Earbuds", Description: "Bluetooth 5.3 earbuds with charging case",
			Category: models.CategoryElectronics, Brand: "Sonique", Price: ptr(2499.0),
			StockQuantity: ptr(40), Images: []string{"https://cdn.storefront.local/earbuds.jpg"}, Material: "Plastic",
		},
		{
			Name: "Cotton Kurta", Description: "Hand block printed kurta",
			Category: models.CategoryFashion, Brand: "Corner Goods", Price: ptr(1299.0),
			StockQuantity: ptr(0), Images: []string{"https://cdn.storefront.local/kurta.jpg"}, Material: "Cotton",
			SourceType: ptr(models.SourceShop), ShopID: &shop.ID,
		},
		{
			Name: "Steel Water Bottle", Description: "1L insulated bottle",
			Category: models.CategoryHome, Brand: "Hydra", Price: ptr(799.0),
			StockQuantity: ptr(0), Images: []string{"https://cdn.storefront.local/bottle.jpg"}, Material: "Steel",
		},
	}

	for _, d := range drafts {
		fmt.Printf("Seeding: %s\n", d.Name)
		product, err := products.Save(ctx, d)
		if err != nil {
			log.Printf("Failed to seed product %s: %v\n", d.Name, err)
			continue
		}

		b, _ := json.MarshalIndent(product, "", "  ")
		fmt.Printf("Product: %s\n", string(b))
		fmt.Println("--------------------------------------------------")
	}
}
