package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Message is one chat announcement. A non-empty PanelKey makes the
// adapter edit a single pinned message in place instead of posting a
// new one; the running draw board uses this so the channel isn't
// flooded with 75 posts.
type Message struct {
	Content     string
	Title       string
	Description string
	Fields      []Field
	Color       int
	PanelKey    string
}

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// discordAdapter delivers messages to a Discord-compatible webhook.
type discordAdapter struct {
	client    *httpClient
	mu        sync.Mutex
	messageBy map[string]string
}

func newDiscordAdapter(client *httpClient) *discordAdapter {
	return &discordAdapter{client: client, messageBy: map[string]string{}}
}

func (a *discordAdapter) send(ctx context.Context, endpoint string, msg Message) error {
	payload := webhookPayload(msg)
	key := strings.TrimSpace(msg.PanelKey)
	if key == "" {
		_, _, err := a.client.postJSON(ctx, endpoint, payload)
		return err
	}

	panelKey := endpoint + "|" + key
	msgID := a.messageID(panelKey)
	if msgID == "" {
		return a.createPanel(ctx, endpoint, panelKey, payload)
	}
	editURL, ok := messageEditURL(endpoint, msgID)
	if !ok {
		_, _, err := a.client.postJSON(ctx, endpoint, payload)
		return err
	}
	status, _, err := a.client.patchJSON(ctx, editURL, payload)
	if err == nil {
		return nil
	}
	if status != http.StatusNotFound {
		return err
	}
	// Panel message was deleted; recreate it.
	return a.createPanel(ctx, endpoint, panelKey, payload)
}

func (a *discordAdapter) createPanel(ctx context.Context, endpoint, panelKey string, payload map[string]any) error {
	_, raw, err := a.client.postJSON(ctx, withWait(endpoint), payload)
	if err != nil {
		return err
	}
	var created struct {
		ID string `json:"id"`
	}
	if jsonErr := json.Unmarshal(raw, &created); jsonErr == nil && created.ID != "" {
		a.setMessageID(panelKey, created.ID)
	}
	return nil
}

// forgetPanel drops the edit target so a finished game's board is left
// as-is and a future game posts a fresh one.
func (a *discordAdapter) forgetPanel(endpoint, key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.messageBy, endpoint+"|"+strings.TrimSpace(key))
}

func (a *discordAdapter) messageID(key string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.messageBy[key]
}

func (a *discordAdapter) setMessageID(key, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messageBy[key] = id
}

func webhookPayload(msg Message) map[string]any {
	fields := make([]map[string]any, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		fields = append(fields, map[string]any{
			"name":   f.Name,
			"value":  f.Value,
			"inline": f.Inline,
		})
	}
	embed := map[string]any{
		"title":       msg.Title,
		"description": msg.Description,
		"fields":      fields,
		"color":       msg.Color,
	}
	return map[string]any{
		"content": msg.Content,
		"embeds":  []map[string]any{embed},
	}
}

// withWait asks the webhook to return the created message so the panel
// can be edited later.
func withWait(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	q := u.Query()
	q.Set("wait", "true")
	u.RawQuery = q.Encode()
	return u.String()
}

// messageEditURL turns .../webhooks/{id}/{token} into the endpoint
// that edits one of its messages.
func messageEditURL(endpoint, messageID string) (string, bool) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false
	}
	u.RawQuery = ""
	u.Path = strings.TrimRight(u.Path, "/") + "/messages/" + messageID
	return u.String(), true
}
