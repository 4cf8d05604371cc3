package orderControllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hamzatariq-git/shopmate-api/config"
	"github.com/hamzatariq-git/shopmate-api/services"
	"github.com/hamzatariq-git/shopmate-api/storage"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeWebhookHandler consumes provider deliveries. Signature failures get a
// raw 400 and the provider treats the delivery as terminal. Once the
// signature checks out the delivery is always acknowledged with 200, even if
// finalization fails; failures are only logged.
func StripeWebhookHandler(cfg *config.Config, events storage.WebhookEventStorage, orders services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusBadRequest, "Webhook Error: %v", err)
			return
		}

		event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), cfg.StripeWebhookSecret)
		if err != nil {
			c.String(http.StatusBadRequest, "Webhook Error: %v", err)
			return
		}

		// Every event type other than a completed checkout is acknowledged
		// and ignored.
		if event.Type == "checkout.session.completed" {
			handleCompletedCheckout(c, event, events, orders)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func handleCompletedCheckout(c *gin.Context, event stripe.Event, events storage.WebhookEventStorage, orders services.OrderService) {
	ctx := c.Request.Context()

	if err := events.MarkProcessed(ctx, event.ID); err != nil {
		if errors.Is(err, storage.ErrEventAlreadyProcessed) {
			log.Printf("skipping duplicate webhook delivery %s", event.ID)
		} else {
			log.Printf("failed to record webhook event %s: %v", event.ID, err)
		}
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		log.Printf("failed to decode checkout session from event %s: %v", event.ID, err)
		return
	}

	order, err := orders.FinalizeCardOrder(ctx, services.CompletedSession{
		CartID:              sess.ClientReferenceID,
		CustomerEmail:       sess.CustomerEmail,
		AmountTotal:         sess.AmountTotal,
		ShippingAddressJSON: sess.Metadata["shippingAddress"],
	})
	if err != nil {
		log.Printf("failed to finalize card order for cart %s: %v", sess.ClientReferenceID, err)
		return
	}

	log.Printf("✅ card order %s finalized for cart %s", order.OrderRef, sess.ClientReferenceID)
	BroadcastNewOrder(*order)
}
