// Package api implements ports.GameAPI against the live SpaceTraders HTTP
// API: a rate-limited, circuit-broken, retrying JSON client (spec.md §7).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ports"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

const (
	defaultBaseURL          = "https://api.spacetraders.io/v2"
	defaultTimeout          = 30 * time.Second
	defaultMaxRetries       = 5
	defaultBackoffBase      = time.Second
	defaultCircuitThreshold = 5
	defaultCircuitTimeout   = 60 * time.Second
)

// Client implements ports.GameAPI for a single authenticated agent. One
// process holds exactly one Client (spec.md §9 "Global state": no
// process-wide statics, one HTTP collaborator per agent).
type Client struct {
	httpClient     *http.Client
	rateLimiter    *rate.Limiter
	baseURL        string
	token          string
	maxRetries     int
	backoffBase    time.Duration
	circuitBreaker *CircuitBreaker
	clock          shared.Clock
	metrics        MetricsRecorder
	resetSignal    chan<- struct{}
}

// MetricsRecorder is the narrow observability surface request() drives.
// adapters/metrics.APICollector satisfies it; nil is a valid Config value
// and every call site below is a nil-checked no-op in that case.
type MetricsRecorder interface {
	RecordRequest(method, path string, statusCode int, durationSeconds float64)
	RecordRetry(method, path, reason string)
	RecordRateLimitWait(method, path string, durationSeconds float64)
}

// Config configures a Client away from its production defaults; Token is
// the only field most callers need to set.
type Config struct {
	BaseURL          string
	Token            string
	MaxRetries       int
	BackoffBase      time.Duration
	CircuitThreshold int
	CircuitTimeout   time.Duration
	Clock            shared.Clock
	Metrics          MetricsRecorder

	// ResetSignal, if set, receives one value (non-blockingly) the first
	// time the API reports a game reset (spec.md §6: a 4xx body carrying
	// "code: 401"/"reset" markers). The top-level agent manager owns the
	// receive end and re-bootstraps on signal.
	ResetSignal chan<- struct{}
}

// New builds a Client with defaults matching the game's documented rate
// limit (2 req/sec, burst 2) filled in for any zero-valued Config field.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.BackoffBase == 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	if cfg.CircuitThreshold == 0 {
		cfg.CircuitThreshold = defaultCircuitThreshold
	}
	if cfg.CircuitTimeout == 0 {
		cfg.CircuitTimeout = defaultCircuitTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = shared.RealClock{}
	}
	return &Client{
		httpClient:     &http.Client{Timeout: defaultTimeout},
		rateLimiter:    rate.NewLimiter(rate.Limit(2), 2),
		baseURL:        cfg.BaseURL,
		token:          cfg.Token,
		maxRetries:     cfg.MaxRetries,
		backoffBase:    cfg.BackoffBase,
		circuitBreaker: NewCircuitBreaker(cfg.CircuitThreshold, cfg.CircuitTimeout, cfg.Clock),
		clock:          cfg.Clock,
		metrics:        cfg.Metrics,
		resetSignal:    cfg.ResetSignal,
	}
}

// isResetMarker reports whether body carries the game's reset-detection
// markers on a 4xx response (spec.md §6).
func isResetMarker(body []byte) bool {
	s := string(body)
	return strings.Contains(s, "code: 401") || strings.Contains(s, "\"code\":401") || strings.Contains(strings.ToLower(s), "reset")
}

// raiseReset signals the top-level agent manager out of band, dropping the
// signal if nothing is listening or one is already pending.
func (c *Client) raiseReset() {
	if c.resetSignal == nil {
		return
	}
	select {
	case c.resetSignal <- struct{}{}:
	default:
	}
}

// RateLimitSnapshot reports the limiter's current burst availability for
// metrics export.
func (c *Client) RateLimitSnapshot() ports.RateLimitSnapshot {
	return ports.RateLimitSnapshot{TokensAvailable: c.rateLimiter.Tokens(), ObservedAt: c.clock.Now()}
}

func (c *Client) CircuitState() CircuitState { return c.circuitBreaker.State() }

var _ ports.GameAPI = (*Client)(nil)

func (c *Client) GetStatus(ctx context.Context) error {
	return c.request(ctx, http.MethodGet, "/", nil, nil)
}

func (c *Client) GetAgent(ctx context.Context) (*ports.AgentStatus, error) {
	var resp struct {
		Data struct {
			Symbol  string `json:"symbol"`
			Credits int    `json:"credits"`
		} `json:"data"`
	}
	if err := c.request(ctx, http.MethodGet, "/my/agent", nil, &resp); err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return &ports.AgentStatus{Symbol: resp.Data.Symbol, Credits: resp.Data.Credits}, nil
}

func (c *Client) GetConstructionSite(ctx context.Context, waypoint string) (*ports.ConstructionSite, error) {
	var resp struct {
		Data struct {
			Symbol     string `json:"symbol"`
			Materials  []struct {
				TradeSymbol string `json:"tradeSymbol"`
				Required    int    `json:"required"`
				Fulfilled   int    `json:"fulfilled"`
			} `json:"materials"`
			IsComplete bool `json:"isComplete"`
		} `json:"data"`
	}
	if err := c.request(ctx, http.MethodGet, "/systems/"+shared.SystemSymbolOf(waypoint)+"/waypoints/"+waypoint+"/construction", nil, &resp); err != nil {
		return nil, fmt.Errorf("get construction site: %w", err)
	}
	materials := make([]ports.ConstructionMaterial, len(resp.Data.Materials))
	for i, m := range resp.Data.Materials {
		materials[i] = ports.ConstructionMaterial{TradeSymbol: m.TradeSymbol, Required: m.Required, Fulfilled: m.Fulfilled}
	}
	return &ports.ConstructionSite{Waypoint: resp.Data.Symbol, Materials: materials, Complete: resp.Data.IsComplete}, nil
}

func (c *Client) DockShip(ctx context.Context, ship string) (*ports.NavResult, error) {
	return c.navMutation(ctx, http.MethodPost, "/my/ships/"+ship+"/dock")
}

func (c *Client) OrbitShip(ctx context.Context, ship string) (*ports.NavResult, error) {
	return c.navMutation(ctx, http.MethodPost, "/my/ships/"+ship+"/orbit")
}

func (c *Client) SetFlightMode(ctx context.Context, ship string, mode shared.FlightMode) (*ports.NavResult, error) {
	var resp navResultEnvelope
	body := map[string]string{"flightMode": string(mode)}
	if err := c.request(ctx, http.MethodPatch, "/my/ships/"+ship+"/nav", body, &resp); err != nil {
		return nil, fmt.Errorf("set flight mode: %w", err)
	}
	return resp.toNavResult(), nil
}

func (c *Client) Navigate(ctx context.Context, ship, to string) (*ports.NavResult, error) {
	var resp navResultEnvelope
	body := map[string]string{"waypointSymbol": to}
	if err := c.request(ctx, http.MethodPost, "/my/ships/"+ship+"/navigate", body, &resp); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	return resp.toNavResult(), nil
}

func (c *Client) Refuel(ctx context.Context, ship string, amount int, fromCargo bool) (*ports.RefuelResult, error) {
	var resp struct {
		Data struct {
			Agent struct {
				Credits int `json:"credits"`
			} `json:"agent"`
			Fuel struct {
				Current  int `json:"current"`
				Capacity int `json:"capacity"`
			} `json:"fuel"`
			Transaction struct {
				Units        int `json:"units"`
				PricePerUnit int `json:"pricePerUnit"`
				TotalPrice   int `json:"totalPrice"`
			} `json:"transaction"`
		} `json:"data"`
	}
	body := map[string]any{"fromCargo": fromCargo}
	if amount > 0 {
		body["units"] = amount
	}
	if err := c.request(ctx, http.MethodPost, "/my/ships/"+ship+"/refuel", body, &resp); err != nil {
		return nil, fmt.Errorf("refuel: %w", err)
	}
	return &ports.RefuelResult{
		FuelCurrent:  resp.Data.Fuel.Current,
		FuelCapacity: resp.Data.Fuel.Capacity,
		UnitsBought:  resp.Data.Transaction.Units,
		PricePerUnit: resp.Data.Transaction.PricePerUnit,
		TotalCost:    resp.Data.Transaction.TotalPrice,
	}, nil
}

func (c *Client) ListShips(ctx context.Context, page, limit int) (ports.Envelope[[]*navigation.Ship], error) {
	var resp struct {
		Data []shipDTO    `json:"data"`
		Meta metaDTO      `json:"meta"`
	}
	path := fmt.Sprintf("/my/ships?page=%d&limit=%d", page, limit)
	if err := c.request(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return ports.Envelope[[]*navigation.Ship]{}, fmt.Errorf("list ships: %w", err)
	}
	ships := make([]*navigation.Ship, 0, len(resp.Data))
	for _, d := range resp.Data {
		ship, err := d.toShip()
		if err != nil {
			return ports.Envelope[[]*navigation.Ship]{}, fmt.Errorf("decode ship %s: %w", d.Symbol, err)
		}
		ships = append(ships, ship)
	}
	return ports.Envelope[[]*navigation.Ship]{Data: ships, Meta: resp.Meta.toPageMeta()}, nil
}

func (c *Client) ListWaypointsOfSystemPage(ctx context.Context, system string, page, limit int) (ports.Envelope[[]*shared.Waypoint], error) {
	var resp struct {
		Data []waypointDTO `json:"data"`
		Meta metaDTO       `json:"meta"`
	}
	path := fmt.Sprintf("/systems/%s/waypoints?page=%d&limit=%d", system, page, limit)
	if err := c.request(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return ports.Envelope[[]*shared.Waypoint]{}, fmt.Errorf("list waypoints: %w", err)
	}
	wps := make([]*shared.Waypoint, len(resp.Data))
	for i, d := range resp.Data {
		wps[i] = d.toWaypoint()
	}
	return ports.Envelope[[]*shared.Waypoint]{Data: wps, Meta: resp.Meta.toPageMeta()}, nil
}

func (c *Client) ListSystemsPage(ctx context.Context, page, limit int) (ports.Envelope[[]string], error) {
	var resp struct {
		Data []struct {
			Symbol string `json:"symbol"`
		} `json:"data"`
		Meta metaDTO `json:"meta"`
	}
	path := fmt.Sprintf("/systems?page=%d&limit=%d", page, limit)
	if err := c.request(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return ports.Envelope[[]string]{}, fmt.Errorf("list systems: %w", err)
	}
	symbols := make([]string, len(resp.Data))
	for i, d := range resp.Data {
		symbols[i] = d.Symbol
	}
	return ports.Envelope[[]string]{Data: symbols, Meta: resp.Meta.toPageMeta()}, nil
}

func (c *Client) GetSystem(ctx context.Context, symbol string) (*shared.Waypoint, error) {
	var resp struct {
		Data waypointDTO `json:"data"`
	}
	if err := c.request(ctx, http.MethodGet, "/systems/"+symbol, nil, &resp); err != nil {
		return nil, fmt.Errorf("get system: %w", err)
	}
	return resp.Data.toWaypoint(), nil
}

func (c *Client) GetMarketplace(ctx context.Context, waypoint string) (*market.MarketData, error) {
	var resp struct {
		Data struct {
			Symbol   string `json:"symbol"`
			Exports  []struct{ Symbol string `json:"symbol"` } `json:"exports"`
			Imports  []struct{ Symbol string `json:"symbol"` } `json:"imports"`
			Exchange []struct{ Symbol string `json:"symbol"` } `json:"exchange"`
			TradeGoods []struct {
				Symbol        string  `json:"symbol"`
				TradeVolume   int     `json:"tradeVolume"`
				Supply        string  `json:"supply"`
				Activity      *string `json:"activity"`
				PurchasePrice int     `json:"purchasePrice"`
				SellPrice     int     `json:"sellPrice"`
			} `json:"tradeGoods"`
		} `json:"data"`
	}
	if err := c.request(ctx, http.MethodGet, "/systems/"+shared.SystemSymbolOf(waypoint)+"/waypoints/"+waypoint+"/market", nil, &resp); err != nil {
		return nil, fmt.Errorf("get marketplace: %w", err)
	}
	m := &market.MarketData{Waypoint: resp.Data.Symbol}
	for _, g := range resp.Data.Exports {
		m.Exports = append(m.Exports, market.GoodSummary{Symbol: g.Symbol})
	}
	for _, g := range resp.Data.Imports {
		m.Imports = append(m.Imports, market.GoodSummary{Symbol: g.Symbol})
	}
	for _, g := range resp.Data.Exchange {
		m.Exchange = append(m.Exchange, market.GoodSummary{Symbol: g.Symbol})
	}
	for _, g := range resp.Data.TradeGoods {
		var activity *market.Activity
		if g.Activity != nil {
			a := market.Activity(*g.Activity)
			activity = &a
		}
		m.Detailed = append(m.Detailed, market.GoodDetail{
			Symbol:        g.Symbol,
			TradeVolume:   g.TradeVolume,
			Supply:        market.Supply(g.Supply),
			Activity:      activity,
			PurchasePrice: g.PurchasePrice,
			SellPrice:     g.SellPrice,
		})
	}
	return m, nil
}

func (c *Client) GetJumpGate(ctx context.Context, waypoint string) ([]string, error) {
	var resp struct {
		Data struct {
			Connections []string `json:"connections"`
		} `json:"data"`
	}
	if err := c.request(ctx, http.MethodGet, "/systems/"+shared.SystemSymbolOf(waypoint)+"/waypoints/"+waypoint+"/jump-gate", nil, &resp); err != nil {
		return nil, fmt.Errorf("get jump gate: %w", err)
	}
	return resp.Data.Connections, nil
}

func (c *Client) GetShipyard(ctx context.Context, waypoint string) (*ports.Shipyard, error) {
	var resp struct {
		Data struct {
			Symbol string `json:"symbol"`
			Ships  []struct {
				Type          string `json:"type"`
				Frame         struct{ Symbol string `json:"symbol"` } `json:"frame"`
				PurchasePrice int    `json:"purchasePrice"`
			} `json:"ships"`
		} `json:"data"`
	}
	if err := c.request(ctx, http.MethodGet, "/systems/"+shared.SystemSymbolOf(waypoint)+"/waypoints/"+waypoint+"/shipyard", nil, &resp); err != nil {
		return nil, fmt.Errorf("get shipyard: %w", err)
	}
	listings := make([]ports.ShipyardListing, len(resp.Data.Ships))
	for i, s := range resp.Data.Ships {
		listings[i] = ports.ShipyardListing{ShipType: s.Type, Frame: s.Frame.Symbol, PurchasePrice: s.PurchasePrice}
	}
	return &ports.Shipyard{Waypoint: resp.Data.Symbol, Ships: listings}, nil
}

func (c *Client) CreateChart(ctx context.Context, ship string) (*ports.ChartResult, error) {
	var resp struct {
		Data struct {
			Waypoint waypointDTO `json:"waypoint"`
		} `json:"data"`
	}
	if err := c.request(ctx, http.MethodPost, "/my/ships/"+ship+"/chart", nil, &resp); err != nil {
		return nil, fmt.Errorf("create chart: %w", err)
	}
	return &ports.ChartResult{Waypoint: resp.Data.Waypoint.toWaypoint()}, nil
}

func (c *Client) PurchaseTradeGood(ctx context.Context, ship, tradeSymbol string, units int) (*ports.TradeResult, error) {
	return c.trade(ctx, "/my/ships/"+ship+"/purchase", tradeSymbol, units)
}

func (c *Client) SellTradeGood(ctx context.Context, ship, tradeSymbol string, units int) (*ports.TradeResult, error) {
	return c.trade(ctx, "/my/ships/"+ship+"/sell", tradeSymbol, units)
}

func (c *Client) trade(ctx context.Context, path, tradeSymbol string, units int) (*ports.TradeResult, error) {
	var resp struct {
		Data struct {
			Agent struct {
				Credits int `json:"credits"`
			} `json:"agent"`
			Cargo       cargoDTO `json:"cargo"`
			Transaction struct {
				TradeSymbol  string `json:"tradeSymbol"`
				Units        int    `json:"units"`
				PricePerUnit int    `json:"pricePerUnit"`
				TotalPrice   int    `json:"totalPrice"`
			} `json:"transaction"`
		} `json:"data"`
	}
	body := map[string]any{"symbol": tradeSymbol, "units": units}
	if err := c.request(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, fmt.Errorf("trade: %w", err)
	}
	cargo, err := resp.Data.Cargo.toCargo()
	if err != nil {
		return nil, err
	}
	return &ports.TradeResult{
		TradeSymbol:  resp.Data.Transaction.TradeSymbol,
		Units:        resp.Data.Transaction.Units,
		PricePerUnit: resp.Data.Transaction.PricePerUnit,
		TotalPrice:   resp.Data.Transaction.TotalPrice,
		NewCargo:     cargo,
		AgentCredits: resp.Data.Agent.Credits,
	}, nil
}

func (c *Client) SupplyConstruction(ctx context.Context, ship, waypoint, tradeSymbol string, units int) (int, error) {
	var resp struct {
		Data struct {
			Construction struct {
				Materials []struct {
					TradeSymbol string `json:"tradeSymbol"`
					Fulfilled   int    `json:"fulfilled"`
				} `json:"materials"`
			} `json:"construction"`
		} `json:"data"`
	}
	body := map[string]any{"shipSymbol": ship, "tradeSymbol": tradeSymbol, "units": units}
	path := "/systems/" + shared.SystemSymbolOf(waypoint) + "/waypoints/" + waypoint + "/construction/supply"
	if err := c.request(ctx, http.MethodPost, path, body, &resp); err != nil {
		return 0, fmt.Errorf("supply construction: %w", err)
	}
	for _, m := range resp.Data.Construction.Materials {
		if m.TradeSymbol == tradeSymbol {
			return m.Fulfilled, nil
		}
	}
	return 0, nil
}

func (c *Client) PurchaseShip(ctx context.Context, shipType, waypoint string) (*ports.ShipPurchaseResult, error) {
	var resp struct {
		Data struct {
			Ship  shipDTO `json:"ship"`
			Agent struct {
				Credits int `json:"credits"`
			} `json:"agent"`
			Transaction struct {
				TotalPrice int `json:"totalPrice"`
			} `json:"transaction"`
		} `json:"data"`
	}
	body := map[string]string{"shipType": shipType, "waypointSymbol": waypoint}
	if err := c.request(ctx, http.MethodPost, "/my/ships", body, &resp); err != nil {
		return nil, fmt.Errorf("purchase ship: %w", err)
	}
	ship, err := resp.Data.Ship.toShip()
	if err != nil {
		return nil, err
	}
	return &ports.ShipPurchaseResult{Ship: ship, TotalPrice: resp.Data.Transaction.TotalPrice, AgentCredits: resp.Data.Agent.Credits}, nil
}

func (c *Client) AcceptContract(ctx context.Context, contractID string) (*ports.ContractResult, error) {
	return c.contractMutation(ctx, contractID, "accept")
}

func (c *Client) FulfillContract(ctx context.Context, contractID string) (*ports.ContractResult, error) {
	return c.contractMutation(ctx, contractID, "fulfill")
}

func (c *Client) contractMutation(ctx context.Context, contractID, verb string) (*ports.ContractResult, error) {
	var resp struct {
		Data struct {
			Agent struct {
				Credits int `json:"credits"`
			} `json:"agent"`
			Contract struct {
				Terms struct {
					Payment struct {
						OnAccepted  int `json:"onAccepted"`
						OnFulfilled int `json:"onFulfilled"`
					} `json:"payment"`
				} `json:"terms"`
			} `json:"contract"`
		} `json:"data"`
	}
	path := "/my/contracts/" + contractID + "/" + verb
	if err := c.request(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("%s contract: %w", verb, err)
	}
	payment := resp.Data.Contract.Terms.Payment.OnAccepted
	if verb == "fulfill" {
		payment = resp.Data.Contract.Terms.Payment.OnFulfilled
	}
	return &ports.ContractResult{Payment: payment, AgentCredits: resp.Data.Agent.Credits}, nil
}

func (c *Client) Register(ctx context.Context, faction, symbol, email string) (*ports.AgentStatus, error) {
	var resp struct {
		Data struct {
			Token string `json:"token"`
			Agent struct {
				Symbol  string `json:"symbol"`
				Credits int    `json:"credits"`
			} `json:"agent"`
		} `json:"data"`
	}
	body := map[string]string{"faction": faction, "symbol": symbol, "email": email}
	if err := c.request(ctx, http.MethodPost, "/register", body, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	c.token = resp.Data.Token
	return &ports.AgentStatus{Symbol: resp.Data.Agent.Symbol, Credits: resp.Data.Agent.Credits}, nil
}

func (c *Client) navMutation(ctx context.Context, method, path string) (*ports.NavResult, error) {
	var resp navResultEnvelope
	if err := c.request(ctx, method, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("nav mutation %s: %w", path, err)
	}
	return resp.toNavResult(), nil
}

// request runs one logical call through the circuit breaker, retrying
// rate-limited and transient-failure responses with exponential backoff
// (spec.md §7). The breaker wraps the whole retry loop, not each attempt,
// so it only trips once every retry within a call has been exhausted.
func (c *Client) request(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path
	var lastErr error

	err := c.circuitBreaker.Call(func() error {
		for attempt := 0; attempt <= c.maxRetries; attempt++ {
			waitStart := c.clock.Now()
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}
			if c.metrics != nil {
				c.metrics.RecordRateLimitWait(method, path, c.clock.Now().Sub(waitStart).Seconds())
			}

			var reqBody io.Reader
			if body != nil {
				encoded, err := json.Marshal(body)
				if err != nil {
					return fmt.Errorf("marshal request body: %w", err)
				}
				reqBody = bytes.NewReader(encoded)
			}

			req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
			if err != nil {
				return fmt.Errorf("build request: %w", err)
			}
			req.Header.Set("Content-Type", "application/json")
			if c.token != "" {
				req.Header.Set("Authorization", "Bearer "+c.token)
			}

			attemptStart := c.clock.Now()
			resp, err := c.httpClient.Do(req)
			if err != nil {
				lastErr = fmt.Errorf("network error: %w", err)
				if attempt >= c.maxRetries || ctx.Err() != nil {
					break
				}
				if c.metrics != nil {
					c.metrics.RecordRetry(method, path, "network_error")
				}
				c.clock.Sleep(c.backoffDelay(attempt, 0))
				continue
			}

			respBody, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return fmt.Errorf("read response: %w", readErr)
			}
			if c.metrics != nil {
				c.metrics.RecordRequest(method, path, resp.StatusCode, c.clock.Now().Sub(attemptStart).Seconds())
			}

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("retryable status %d: %s", resp.StatusCode, string(respBody))
				if attempt >= c.maxRetries || ctx.Err() != nil {
					break
				}
				if c.metrics != nil {
					c.metrics.RecordRetry(method, path, strconv.Itoa(resp.StatusCode))
				}
				retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
				c.clock.Sleep(c.backoffDelay(attempt, retryAfter))
				continue
			}

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				if resp.StatusCode >= 400 && resp.StatusCode < 500 && isResetMarker(respBody) {
					c.raiseReset()
				}
				return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(respBody))
			}

			if result != nil {
				if err := json.Unmarshal(respBody, result); err != nil {
					return fmt.Errorf("unmarshal response: %w", err)
				}
			}
			return nil
		}
		if lastErr != nil {
			return fmt.Errorf("max retries exceeded: %w", lastErr)
		}
		return fmt.Errorf("max retries exceeded")
	})

	return err
}

func (c *Client) backoffDelay(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return retryAfter
	}
	return c.backoffBase * time.Duration(1<<uint(attempt))
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
