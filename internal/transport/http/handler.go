package http

import (
	"strconv"

	"prizeledger/internal/model"
	"prizeledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	svc      service.LedgerService
	adminKey string
	log      *zap.Logger
}

func NewHandler(svc service.LedgerService, adminKey string, log *zap.Logger) *Handler {
	return &Handler{svc: svc, adminKey: adminKey, log: log}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	app.Get("/games", h.Games)
	app.Post("/redeem", h.Redeem)
	app.Get("/session", h.GetSession)
	app.Post("/play", h.Play)
	app.Post("/payout-request", h.RequestPayout)
	app.Get("/payout-request", h.GetPayoutRequest)
	app.Post("/convert", h.Convert)
	app.Get("/plays/recent", h.RecentPlays)
	app.Post("/accounts", h.RegisterAccount)

	acc := app.Group("/account", AccountAuth())
	acc.Get("", h.GetAccount)
	acc.Post("/wallet", h.LinkWallet)
	acc.Post("/play", h.AccountPlay)
	acc.Get("/history", h.AccountHistory)
	app.Post("/deposit", AccountAuth(), h.Deposit)
	wd := app.Group("/withdraw", AccountAuth())
	wd.Post("/request-2fa", h.RequestTwoFactor)
	wd.Post("/verify-2fa", h.VerifyTwoFactor)
	wd.Post("/submit", h.Withdraw)

	app.Patch("/payout-request", AdminAuth(h.adminKey), h.ProcessPayoutRequest)
	admin := app.Group("/admin", AdminAuth(h.adminKey))
	admin.Post("/codes", h.IssueCodes)
	admin.Get("/codes", h.ListCodes)
	admin.Get("/payout-requests", h.ListPayoutRequests)
	admin.Post("/payouts", h.DirectPayout)
	admin.Get("/payouts", h.ListPayouts)
	admin.Get("/stats", h.Stats)
	admin.Get("/sales", h.Sales)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.SendString("OK")
}

func (h *Handler) Games(c *fiber.Ctx) error {
	return respondJSON(c, fiber.StatusOK, h.svc.Games())
}

func (h *Handler) Redeem(c *fiber.Ctx) error {
	var req model.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	view, err := h.svc.Redeem(c.UserContext(), req.Code)
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, view)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	view, err := h.svc.GetSession(c.UserContext(), c.Query("code"))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, view)
}

// Play settles a code play. Account plays are accepted only with the auth
// proxy's account header; the body's accountId is never trusted.
func (h *Handler) Play(c *fiber.Ctx) error {
	var req model.PlayRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.AccountID != "" || c.Get(headerAccountID) != "" {
		id := c.Get(headerAccountID)
		if id == "" {
			return unauthorized(c, "account id is required")
		}
		req.AccountID, req.Code = id, ""
	}
	if req.Code == "" && req.AccountID == "" {
		return h.respondError(c, model.NewError(model.CodeInvalidParams, "code is required"))
	}
	return h.play(c, req)
}

func (h *Handler) AccountPlay(c *fiber.Ctx) error {
	var req model.PlayRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.AccountID, req.Code = accountOf(c), ""
	return h.play(c, req)
}

func (h *Handler) play(c *fiber.Ctx, req model.PlayRequest) error {
	res, err := h.svc.Play(c.UserContext(), req)
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, res)
}

// contactBody accepts both the payer* and player* spellings of the contact
// fields.
type contactBody struct {
	PayerName     string `json:"payerName"`
	PayerPhone    string `json:"payerPhone"`
	PayerCountry  string `json:"payerCountry"`
	PlayerName    string `json:"playerName"`
	PlayerPhone   string `json:"playerPhone"`
	PlayerCountry string `json:"playerCountry"`
}

func firstOf(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func (b contactBody) contact() model.PlayerContact {
	return model.PlayerContact{
		Name:    firstOf(b.PlayerName, b.PayerName),
		Phone:   firstOf(b.PlayerPhone, b.PayerPhone),
		Country: firstOf(b.PlayerCountry, b.PayerCountry),
	}
}

type claimBody struct {
	Code   string          `json:"code"`
	GameID string          `json:"gameId"`
	Amount decimal.Decimal `json:"amount"`
	contactBody
}

func (h *Handler) RequestPayout(c *fiber.Ctx) error {
	var body claimBody
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}
	req, err := h.svc.RequestPayout(c.UserContext(), model.PayoutRequestInput{
		Code:          body.Code,
		GameID:        body.GameID,
		Amount:        body.Amount,
		PlayerContact: body.contact(),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusCreated, fiber.Map{"requestId": req.ID, "status": req.Status})
}

func (h *Handler) GetPayoutRequest(c *fiber.Ctx) error {
	req, err := h.svc.GetPayoutRequest(c.UserContext(), c.Query("code"))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, req)
}

func (h *Handler) Convert(c *fiber.Ctx) error {
	var body claimBody
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}
	res, err := h.svc.ConvertWinnings(c.UserContext(), model.ConvertInput{
		Code:          body.Code,
		GameID:        body.GameID,
		Amount:        body.Amount,
		PlayerContact: body.contact(),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, res)
}

func (h *Handler) RecentPlays(c *fiber.Ctx) error {
	plays, err := h.svc.RecentPlays(c.UserContext(), c.Query("code"), c.QueryInt("limit"))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, plays)
}

func (h *Handler) RegisterAccount(c *fiber.Ctx) error {
	var in model.RegisterAccountInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	acc, err := h.svc.RegisterAccount(c.UserContext(), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusCreated, acc)
}

func (h *Handler) GetAccount(c *fiber.Ctx) error {
	acc, err := h.svc.GetAccount(c.UserContext(), accountOf(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, fiber.Map{"account": acc, "balance": acc.BalanceView()})
}

func (h *Handler) LinkWallet(c *fiber.Ctx) error {
	var body struct {
		WalletAddress string `json:"walletAddress"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}
	acc, err := h.svc.LinkWallet(c.UserContext(), accountOf(c), body.WalletAddress)
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, acc)
}

func (h *Handler) AccountHistory(c *fiber.Ctx) error {
	txs, err := h.svc.AccountHistory(c.UserContext(), accountOf(c), c.QueryInt("limit"))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, txs)
}

func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req model.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	res, err := h.svc.Deposit(c.UserContext(), accountOf(c), req.Code)
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, res)
}

func (h *Handler) RequestTwoFactor(c *fiber.Ctx) error {
	var body struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}
	res, err := h.svc.RequestWithdrawalCode(c.UserContext(), accountOf(c), body.Amount)
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, res)
}

func (h *Handler) VerifyTwoFactor(c *fiber.Ctx) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.VerifyWithdrawalCode(c.UserContext(), accountOf(c), body.Code); err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, fiber.Map{"verified": true})
}

func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var in model.WithdrawInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.svc.Withdraw(c.UserContext(), accountOf(c), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, res)
}

func (h *Handler) ProcessPayoutRequest(c *fiber.Ctx) error {
	var in model.ProcessPayoutInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	req, err := h.svc.ProcessPayoutRequest(c.UserContext(), in, operatorOf(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, fiber.Map{"requestId": req.ID, "status": req.Status})
}

func (h *Handler) IssueCodes(c *fiber.Ctx) error {
	var in model.IssueCodeInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	codes, err := h.svc.IssueCodes(c.UserContext(), in, operatorOf(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusCreated, codes)
}

func (h *Handler) ListCodes(c *fiber.Ctx) error {
	var used *bool
	if raw := c.Query("used"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return h.respondError(c, model.NewError(model.CodeInvalidParams, "used must be true or false"))
		}
		used = &v
	}
	codes, err := h.svc.ListCodes(c.UserContext(), operatorOf(c), used, c.QueryInt("limit"))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, codes)
}

func (h *Handler) ListPayoutRequests(c *fiber.Ctx) error {
	reqs, err := h.svc.ListPayoutRequests(c.UserContext(), model.PayoutStatus(c.Query("status")), c.QueryInt("limit"))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, reqs)
}

func (h *Handler) DirectPayout(c *fiber.Ctx) error {
	var in model.DirectPayoutInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.svc.DirectPayout(c.UserContext(), in, operatorOf(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusCreated, p)
}

func (h *Handler) ListPayouts(c *fiber.Ctx) error {
	payouts, err := h.svc.ListPayouts(c.UserContext(), operatorOf(c), c.QueryInt("limit"))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, payouts)
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.svc.Stats(c.UserContext(), operatorOf(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, stats)
}

func (h *Handler) Sales(c *fiber.Ctx) error {
	report, err := h.svc.Sales(c.UserContext(), operatorOf(c), c.QueryInt("limit"))
	if err != nil {
		return h.respondError(c, err)
	}
	return respondJSON(c, fiber.StatusOK, report)
}
