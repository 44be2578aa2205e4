package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ゲートウェイ側の失敗は全てこの型に包んで返す。
// ここから先（DBの状態遷移）は呼び出し側の責務
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("paystack %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

type InitializeResult struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
}

type VerifyResult struct {
	//ゲートウェイが success を返したか
	Confirmed bool `json:"confirmed"`

	//ゲートウェイの生のステータス文字列（success / failed / abandoned など）
	RawStatus string `json:"raw_status"`

	//実際に使われた決済チャネル（card / bank_transfer / ussd など）
	Channel string `json:"channel"`
}

// Paystackのトランザクションエンドポイントを叩くクライアント。
// ローカルの状態は一切変更しない（純粋なI/O境界）
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

const defaultBaseURL = "https://api.paystack.co/transaction"

// タイムアウトは必ず設定する。タイムアウトもGatewayError扱い
func NewClient(secretKey string, baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		secretKey:  secretKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type initializeRequest struct {
	Amount   string   `json:"amount"`
	Email    string   `json:"email"`
	Channels []string `json:"channels"`
	Currency string   `json:"currency"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// 取引を初期化して参照とリダイレクト先を得る。
// amountMinorはコボ（最小通貨単位）
func (c *Client) Initialize(ctx context.Context, email string, amountMinor int64) (InitializeResult, error) {
	body := initializeRequest{
		Amount:   fmt.Sprintf("%d", amountMinor),
		Email:    email,
		Channels: []string{"card", "ussd", "bank_transfer"},
		Currency: "NGN",
	}

	var resp initializeResponse
	if err := c.post(ctx, c.baseURL+"/initialize", body, &resp); err != nil {
		c.logger.Error().Err(err).Str("email", email).Msg("paystack initialize failed")
		return InitializeResult{}, &GatewayError{Op: "initialize", Err: err}
	}

	if !resp.Status || resp.Data.Reference == "" || resp.Data.AuthorizationURL == "" {
		err := fmt.Errorf("gateway declined: %s", resp.Message)
		c.logger.Error().Err(err).Msg("paystack initialize declined")
		return InitializeResult{}, &GatewayError{Op: "initialize", Err: err}
	}

	return InitializeResult{
		Reference:        resp.Data.Reference,
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
	}, nil
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status  string `json:"status"`
		Channel string `json:"channel"`
	} `json:"data"`
}

// 参照の最終ステータスを問い合わせる。何度呼んでも安全
func (c *Client) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	var resp verifyResponse
	if err := c.get(ctx, c.baseURL+"/verify/"+reference, &resp); err != nil {
		c.logger.Error().Err(err).Str("reference", reference).Msg("paystack verify failed")
		return VerifyResult{}, &GatewayError{Op: "verify", Err: err}
	}

	if !resp.Status {
		err := fmt.Errorf("gateway declined: %s", resp.Message)
		return VerifyResult{}, &GatewayError{Op: "verify", Err: err}
	}

	return VerifyResult{
		Confirmed: resp.Data.Status == "success",
		RawStatus: resp.Data.Status,
		Channel:   resp.Data.Channel,
	}, nil
}

func (c *Client) post(ctx context.Context, url string, in interface{}, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}
