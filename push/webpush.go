package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/SherClockHolmes/webpush-go"

	"adminpanel/store"
)

// WebPushDispatcher sends the broadcast to every stored subscription.
// Subscriptions rejected with 410 Gone are pruned. Delivery counts as
// failed only when every send fails.
type WebPushDispatcher struct {
	Subs       store.SubscriptionStore
	PublicKey  string
	PrivateKey string
	Subscriber string
}

func NewWebPushDispatcher(subs store.SubscriptionStore, publicKey, privateKey, subscriber string) *WebPushDispatcher {
	return &WebPushDispatcher{
		Subs:       subs,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		Subscriber: subscriber,
	}
}

func (d *WebPushDispatcher) Dispatch(ctx context.Context, b Broadcast) error {
	subs, err := d.Subs.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"title":          b.Title,
		"body":           b.Body,
		"topic":          b.Topic,
		"notificationId": b.NotificationID,
	})
	if err != nil {
		return err
	}

	delivered := 0
	for i := range subs {
		sub := subs[i]
		resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
			Subscriber:      d.Subscriber,
			VAPIDPublicKey:  d.PublicKey,
			VAPIDPrivateKey: d.PrivateKey,
			TTL:             30,
		})
		if err != nil {
			log.Printf("webpush send failed for user %s: %v", sub.UserID.Hex(), err)
			continue
		}
		if resp.StatusCode == 410 {
			log.Printf("webpush subscription expired for user %s, deleting", sub.UserID.Hex())
			if delErr := d.Subs.Delete(ctx, sub.ID); delErr != nil {
				log.Printf("failed to delete expired subscription: %v", delErr)
			}
			resp.Body.Close()
			continue
		}
		resp.Body.Close()
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("webpush delivery failed for all %d subscriptions", len(subs))
	}
	return nil
}

// EnsureVAPIDKeys generates a key pair when none is configured. Development
// convenience; production keys belong in the environment.
func EnsureVAPIDKeys(publicKey, privateKey string) (string, string, error) {
	if publicKey != "" && privateKey != "" {
		return publicKey, privateKey, nil
	}

	// GenerateVAPIDKeys returns the private key first.
	priv, pub, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		return "", "", err
	}
	log.Println("Generated new VAPID keys - for production, set these as environment variables:")
	log.Printf("  VAPID_PUBLIC_KEY: %s", pub)
	log.Printf("  VAPID_PRIVATE_KEY: %s", priv)
	return pub, priv, nil
}
