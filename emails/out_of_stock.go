// Package emails composes and sends catalog notification emails.
package emails

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/sirupsen/logrus"

	"github.com/raushankrgupta/storefront/models"
)

// Mailer delivers a single email.
type Mailer interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, textContent, htmlContent string) error
}

// ErrNoAdmins is returned when an admin alert has nobody to go to.
var ErrNoAdmins = errors.New("no admin recipients configured")

// OutOfStockNotifier tells shop owners and admins that a product ran out.
type OutOfStockNotifier struct {
	mailer Mailer
	admins AdminDirectory
	logger logrus.FieldLogger
}

func NewOutOfStockNotifier(mailer Mailer, admins AdminDirectory, logger logrus.FieldLogger) *OutOfStockNotifier {
	return &OutOfStockNotifier{mailer: mailer, admins: admins, logger: logger}
}

// NotifyShopOutOfStock emails the owner of the shop that lists the product.
func (n *OutOfStockNotifier) NotifyShopOutOfStock(ctx context.Context, product models.Product, shop models.Shop) error {
	if shop.Email == "" {
		return fmt.Errorf("shop %s has no contact email", shop.ID.Hex())
	}

	subject := fmt.Sprintf("%s is out of stock", product.Name)
	text := fmt.Sprintf(
		"Hello %s,\n\nYour product %q (id %s) in %s has run out of stock and is now marked %s.\nRestock it to make it available to customers again.\n",
		ownerName(shop), product.Name, product.ID.Hex(), shop.Name, product.AvailabilityStatus,
	)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your product <strong>%s</strong> (id %s) in <strong>%s</strong> has run out of stock and is now marked <em>%s</em>.</p><p>Restock it to make it available to customers again.</p>",
		html.EscapeString(ownerName(shop)), html.EscapeString(product.Name), product.ID.Hex(),
		html.EscapeString(shop.Name), product.AvailabilityStatus,
	)

	if err := n.mailer.SendEmail(ctx, ownerName(shop), shop.Email, subject, text, body); err != nil {
		return fmt.Errorf("send out of stock email to shop %s: %w", shop.ID.Hex(), err)
	}
	n.logger.WithFields(logrus.Fields{"product": product.ID.Hex(), "shop": shop.ID.Hex()}).Info("shop notified of depleted stock")
	return nil
}

// NotifyAdminOutOfStock emails every site administrator. Each admin is
// tried; the failures are joined.
func (n *OutOfStockNotifier) NotifyAdminOutOfStock(ctx context.Context, product models.Product) error {
	recipients, err := n.admins.AdminRecipients(ctx)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return ErrNoAdmins
	}

	subject := fmt.Sprintf("[Catalog] %s is out of stock", product.Name)
	text := fmt.Sprintf(
		"Product %q (id %s, brand %s, category %s) has run out of stock and is now marked %s.\n",
		product.Name, product.ID.Hex(), product.Brand, product.Category, product.AvailabilityStatus,
	)
	body := fmt.Sprintf(
		"<p>Product <strong>%s</strong> (id %s, brand %s, category %s) has run out of stock and is now marked <em>%s</em>.</p>",
		html.EscapeString(product.Name), product.ID.Hex(), html.EscapeString(product.Brand),
		product.Category, product.AvailabilityStatus,
	)

	var errs []error
	for _, r := range recipients {
		if err := n.mailer.SendEmail(ctx, r.Name, r.Email, subject, text, body); err != nil {
			errs = append(errs, fmt.Errorf("send out of stock email to %s: %w", r.Email, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	n.logger.WithFields(logrus.Fields{"product": product.ID.Hex(), "admins": len(recipients)}).Info("admins notified of depleted stock")
	return nil
}

func ownerName(shop models.Shop) string {
	if shop.OwnerName != "" {
		return shop.OwnerName
	}
	return shop.Name
}
