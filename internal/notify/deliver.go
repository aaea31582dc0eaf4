package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/hashicorp/go-hclog"
)

// Notification is what reaches the user when an alert fires.
type Notification struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Tag    string `json:"tag,omitempty"`
	TimeID string `json:"timeId,omitempty"`
}

type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
	Available(ctx context.Context) bool
}

// DesktopDeliverer shells out to notify-send on Linux and osascript on macOS.
type DesktopDeliverer struct {
	lookPath func(string) (string, error)
	goos     string
}

func NewDesktopDeliverer() DesktopDeliverer {
	return DesktopDeliverer{lookPath: exec.LookPath, goos: runtime.GOOS}
}

func (d DesktopDeliverer) command() string {
	switch d.goos {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

func (d DesktopDeliverer) Available(context.Context) bool {
	name := d.command()
	if name == "" || d.lookPath == nil {
		return false
	}
	_, err := d.lookPath(name)
	return err == nil
}

func (d DesktopDeliverer) Deliver(ctx context.Context, n Notification) error {
	switch d.goos {
	case "linux":
		return exec.CommandContext(ctx, "notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.CommandContext(ctx, "osascript", "-e", script).Run()
	default:
		return ErrUnsupported
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// VAPID holds the Web Push application server identity.
type VAPID struct {
	Subject    string
	PublicKey  string
	PrivateKey string
	TTL        int
}

func (v VAPID) Configured() bool {
	return v.Subject != "" && v.PublicKey != "" && v.PrivateKey != ""
}

// WebPushDeliverer sends each notification to every registered browser
// subscription. Subscriptions the push service reports gone are dropped.
type WebPushDeliverer struct {
	vapid  VAPID
	client *http.Client
	logger hclog.Logger

	mu   sync.Mutex
	subs []webpush.Subscription
}

func NewWebPushDeliverer(vapid VAPID, subs []webpush.Subscription, client *http.Client, logger hclog.Logger) *WebPushDeliverer {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if vapid.TTL <= 0 {
		vapid.TTL = 30
	}
	return &WebPushDeliverer{
		vapid:  vapid,
		client: client,
		logger: logger.Named("webpush"),
		subs:   append([]webpush.Subscription(nil), subs...),
	}
}

// ParseSubscription decodes the JSON a browser's PushManager returns.
func ParseSubscription(raw string) (webpush.Subscription, error) {
	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return webpush.Subscription{}, fmt.Errorf("decode push subscription: %w", err)
	}
	if sub.Endpoint == "" {
		return webpush.Subscription{}, errors.New("notify: push subscription has no endpoint")
	}
	return sub, nil
}

// LoadSubscriptions reads a JSON array of subscriptions. A missing file is
// an empty list.
func LoadSubscriptions(path string) ([]webpush.Subscription, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read push subscriptions: %w", err)
	}
	var subs []webpush.Subscription
	if err := json.Unmarshal(raw, &subs); err != nil {
		return nil, fmt.Errorf("decode push subscriptions: %w", err)
	}
	return subs, nil
}

// AddSubscription appends sub to the file at path, replacing any entry with
// the same endpoint.
func AddSubscription(path string, sub webpush.Subscription) (int, error) {
	subs, err := LoadSubscriptions(path)
	if err != nil {
		return 0, err
	}
	kept := subs[:0]
	for _, s := range subs {
		if s.Endpoint != sub.Endpoint {
			kept = append(kept, s)
		}
	}
	kept = append(kept, sub)
	raw, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return 0, fmt.Errorf("write push subscriptions: %w", err)
	}
	return len(kept), nil
}

func (w *WebPushDeliverer) Subscriptions() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

func (w *WebPushDeliverer) Available(context.Context) bool {
	return w.vapid.Configured() && w.Subscriptions() > 0
}

func (w *WebPushDeliverer) Deliver(ctx context.Context, n Notification) error {
	if !w.vapid.Configured() {
		return ErrPermissionDenied
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}
	opts := &webpush.Options{
		HTTPClient:      w.client,
		Subscriber:      w.vapid.Subject,
		VAPIDPublicKey:  w.vapid.PublicKey,
		VAPIDPrivateKey: w.vapid.PrivateKey,
		TTL:             w.vapid.TTL,
	}

	w.mu.Lock()
	subs := append([]webpush.Subscription(nil), w.subs...)
	w.mu.Unlock()

	sent := 0
	var errs []error
	for i := range subs {
		sub := subs[i]
		resp, err := webpush.SendNotificationWithContext(ctx, payload, &sub, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		status := resp.StatusCode
		if status >= 400 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			w.logger.Warn("push rejected", "status", status, "body", string(body))
		}
		resp.Body.Close()
		switch {
		case status == http.StatusGone || status == http.StatusNotFound || status == http.StatusForbidden:
			w.drop(sub.Endpoint)
			errs = append(errs, fmt.Errorf("subscription rejected: %d", status))
		case status >= 400:
			errs = append(errs, fmt.Errorf("push service status %d", status))
		default:
			sent++
		}
	}
	w.logger.Debug("push delivered", "sent", sent, "failed", len(errs))
	if sent == 0 && len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (w *WebPushDeliverer) drop(endpoint string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	kept := w.subs[:0]
	for _, s := range w.subs {
		if s.Endpoint != endpoint {
			kept = append(kept, s)
		}
	}
	w.subs = kept
	w.logger.Info("removed push subscription", "endpoint", endpoint)
}

// LogDeliverer writes notifications to the log. It is always available.
type LogDeliverer struct {
	Logger hclog.Logger
}

func (d LogDeliverer) Available(context.Context) bool { return true }

func (d LogDeliverer) Deliver(_ context.Context, n Notification) error {
	if d.Logger != nil {
		d.Logger.Info("notification", "title", n.Title, "body", n.Body, "time_id", n.TimeID)
	}
	return nil
}

// Multi fans out to every available deliverer.
type Multi []Deliverer

func (m Multi) Available(ctx context.Context) bool {
	for _, d := range m {
		if d.Available(ctx) {
			return true
		}
	}
	return false
}

func (m Multi) Deliver(ctx context.Context, n Notification) error {
	delivered := false
	var errs []error
	for _, d := range m {
		if !d.Available(ctx) {
			continue
		}
		if err := d.Deliver(ctx, n); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered = true
	}
	if delivered {
		return nil
	}
	if len(errs) == 0 {
		return ErrPermissionDenied
	}
	return errors.Join(errs...)
}
