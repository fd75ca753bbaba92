package kratos

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	kratosclient "github.com/ory/kratos-client-go"

	"marketplace-core/app/domain"
	"marketplace-core/app/port"
)

// IdentityClient implements port.IdentityClient over Ory Kratos native
// self-service flows. The session token is persisted to a device-local
// file so a restarted process resumes the signed-in identity, and a
// background whoami poll detects sessions revoked elsewhere.
type IdentityClient struct {
	client       *Client
	tokenPath    string
	pollInterval time.Duration
	logger       *slog.Logger

	mu           sync.Mutex
	sessionToken string
	identity     *domain.Identity
	handlers     map[int]port.IdentityHandler
	nextID       int
	started      bool
	stop         chan struct{}
}

// NewIdentityClient creates the identity provider driver
func NewIdentityClient(client *Client, tokenPath string, pollInterval time.Duration, logger *slog.Logger) *IdentityClient {
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &IdentityClient{
		client:       client,
		tokenPath:    tokenPath,
		pollInterval: pollInterval,
		logger:       logger.With("component", "kratos_identity"),
		handlers:     make(map[int]port.IdentityHandler),
		stop:         make(chan struct{}),
	}
}

// SignIn runs a native password login flow
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	flow, resp, err := c.client.API().FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, transformError(err, resp, "sign_in")
	}

	body := kratosclient.UpdateLoginFlowWithPasswordMethod{
		Method:     "password",
		Identifier: email,
		Password:   password,
	}
	login, resp, err := c.client.API().FrontendAPI.
		UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratosclient.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, transformError(err, resp, "sign_in")
	}

	identity := identityFromKratos(login.Session.Identity)
	c.adoptSession(login.GetSessionToken(), identity)
	c.logger.Info("sign-in flow completed", "identity_id", identity.ID)
	return identity, nil
}

// SignInWithToken adopts a provider-issued session token
func (c *IdentityClient) SignInWithToken(ctx context.Context, token string) (*domain.Identity, error) {
	session, resp, err := c.client.API().FrontendAPI.
		ToSession(ctx).
		XSessionToken(token).
		Execute()
	if err != nil {
		return nil, transformError(err, resp, "sign_in")
	}

	identity := identityFromKratos(session.Identity)
	c.adoptSession(token, identity)
	c.logger.Info("token sign-in completed", "identity_id", identity.ID)
	return identity, nil
}

// SignUp runs a native password registration flow
func (c *IdentityClient) SignUp(ctx context.Context, email, password string) (*domain.Identity, error) {
	flow, resp, err := c.client.API().FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, transformError(err, resp, "sign_up")
	}

	body := kratosclient.UpdateRegistrationFlowWithPasswordMethod{
		Method:   "password",
		Password: password,
		Traits:   map[string]interface{}{"email": email},
	}
	registration, resp, err := c.client.API().FrontendAPI.
		UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(kratosclient.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&body)).
		Execute()
	if err != nil {
		return nil, transformError(err, resp, "sign_up")
	}

	identity := identityFromKratos(&registration.Identity)
	c.adoptSession(registration.GetSessionToken(), identity)
	c.logger.Info("sign-up flow completed", "identity_id", identity.ID)
	return identity, nil
}

// SignOut revokes the current session token
func (c *IdentityClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.sessionToken
	c.mu.Unlock()

	if token != "" {
		resp, err := c.client.API().FrontendAPI.
			PerformNativeLogout(ctx).
			PerformNativeLogoutBody(*kratosclient.NewPerformNativeLogoutBody(token)).
			Execute()
		if err != nil {
			// A token the provider no longer recognizes is already
			// signed out; anything else is a real failure.
			terr := transformError(err, resp, "sign_out")
			if !strings.Contains(strings.ToLower(err.Error()), "401") && (resp == nil || resp.StatusCode != 401) {
				return terr
			}
		}
	}

	c.adoptSession("", nil)
	c.logger.Info("signed out")
	return nil
}

// OnIdentityChanged registers a listener. The first registration starts
// the driver: the persisted token is validated and the resulting state is
// emitted, then a whoami poll keeps the identity fresh.
func (c *IdentityClient) OnIdentityChanged(handler port.IdentityHandler) port.CancelFunc {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = handler
	startRun := !c.started
	c.started = true
	c.mu.Unlock()

	if startRun {
		go c.run()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.handlers, id)
			c.mu.Unlock()
		})
	}
}

// Close stops the background poll
func (c *IdentityClient) Close() {
	close(c.stop)
}

func (c *IdentityClient) run() {
	c.restoreSession()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.refreshSession()
		case <-c.stop:
			return
		}
	}
}

// restoreSession validates any persisted token and emits the initial
// identity state, present or absent.
func (c *IdentityClient) restoreSession() {
	token := c.loadToken()
	if token == "" {
		c.adoptSession("", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	session, resp, err := c.client.API().FrontendAPI.
		ToSession(ctx).
		XSessionToken(token).
		Execute()
	if err != nil {
		c.logger.Warn("persisted session invalid, starting signed out",
			"error", transformError(err, resp, "whoami"))
		c.adoptSession("", nil)
		return
	}

	identity := identityFromKratos(session.Identity)
	c.logger.Info("restored persisted session", "identity_id", identity.ID)
	c.adoptSession(token, identity)
}

// refreshSession detects sessions revoked outside this process
func (c *IdentityClient) refreshSession() {
	c.mu.Lock()
	token := c.sessionToken
	c.mu.Unlock()
	if token == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, resp, err := c.client.API().FrontendAPI.
		ToSession(ctx).
		XSessionToken(token).
		Execute()
	if err != nil {
		if resp != nil && (resp.StatusCode == 401 || resp.StatusCode == 403) {
			c.logger.Info("session revoked by provider")
			c.adoptSession("", nil)
		} else {
			// Transient failure: keep the session, next tick retries.
			c.logger.Warn("whoami poll failed", "error", err)
		}
	}
}

// adoptSession commits a session token + identity pair and notifies
// listeners. An empty token/nil identity is the signed-out state.
func (c *IdentityClient) adoptSession(token string, identity *domain.Identity) {
	c.mu.Lock()
	c.sessionToken = token
	c.identity = identity
	handlers := make([]port.IdentityHandler, 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	c.persistToken(token)
	for _, h := range handlers {
		h(identity)
	}
}

func (c *IdentityClient) loadToken() string {
	if c.tokenPath == "" {
		return ""
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c *IdentityClient) persistToken(token string) {
	if c.tokenPath == "" {
		return
	}
	if token == "" {
		if err := os.Remove(c.tokenPath); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove session token file", "error", err)
		}
		return
	}
	if err := os.WriteFile(c.tokenPath, []byte(token), 0o600); err != nil {
		c.logger.Warn("failed to persist session token", "error", err)
	}
}

func identityFromKratos(id *kratosclient.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	email := ""
	if traits, ok := id.Traits.(map[string]interface{}); ok {
		email, _ = traits["email"].(string)
	}
	return &domain.Identity{ID: id.Id, Email: email}
}
