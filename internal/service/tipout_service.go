package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tipout/internal/calculator"
	"github.com/mmynk/tipout/internal/i18n"
	"github.com/mmynk/tipout/internal/models"
	"github.com/mmynk/tipout/pkg/api"
)

// Ensure TipoutService implements api.TipoutServiceHandler
var _ api.TipoutServiceHandler = (*TipoutService)(nil)

// TipoutService implements the Connect TipoutService on top of a Session.
type TipoutService struct {
	session *Session
}

// NewTipoutService creates a new TipoutService for session.
func NewTipoutService(session *Session) *TipoutService {
	return &TipoutService{session: session}
}

// Calculate splits the tips and records the calculation in history.
func (s *TipoutService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	method, err := models.ParseMethod(req.Msg.Method)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	in := CalculateInput{
		TotalTips:    req.Msg.TotalTips,
		Method:       method,
		Participants: api.ToModelParticipants(req.Msg.Employees),
	}
	if req.Msg.Language != "" {
		lang, err := i18n.ParseLanguage(req.Msg.Language)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		in.Language = lang
	}

	slog.Debug("Calculate request received",
		"method", method,
		"employees", len(req.Msg.Employees),
	)

	out, err := s.session.Calculate(ctx, in)
	if err != nil {
		var vErr *calculator.ValidationError
		if errors.As(err, &vErr) {
			// The localized message is what the form shows.
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New(vErr.Message))
		}
		slog.Error("Calculate failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	entry := api.FromModelEntry(out.Entry)
	resp := &api.CalculateResponse{
		Results:          api.FromModelResults(out.Results),
		TotalDistributed: out.TotalDistributed,
		Entry:            &entry,
	}
	if out.Warning != nil {
		resp.Warning = out.Warning.Message
	}
	if out.PersistErr != nil {
		resp.PersistError = out.PersistErr.Error()
	}
	return connect.NewResponse(resp), nil
}

// ListHistory returns past calculations, newest first.
func (s *TipoutService) ListHistory(ctx context.Context, req *connect.Request[api.ListHistoryRequest]) (*connect.Response[api.ListHistoryResponse], error) {
	entries := s.session.ListHistory()
	out := make([]api.HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = api.FromModelEntry(e)
	}
	return connect.NewResponse(&api.ListHistoryResponse{Entries: out}), nil
}

// ClearHistory removes all past calculations.
func (s *TipoutService) ClearHistory(ctx context.Context, req *connect.Request[api.ClearHistoryRequest]) (*connect.Response[api.ClearHistoryResponse], error) {
	if err := s.session.ClearHistory(ctx); err != nil {
		slog.Error("ClearHistory failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.ClearHistoryResponse{}), nil
}

// SelectEntry returns one past calculation.
func (s *TipoutService) SelectEntry(ctx context.Context, req *connect.Request[api.SelectEntryRequest]) (*connect.Response[api.SelectEntryResponse], error) {
	entry, err := s.session.SelectEntry(req.Msg.ID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.SelectEntryResponse{Entry: api.FromModelEntry(entry)}), nil
}

// GetLanguage returns the display language, detecting it from the browser
// language when no preference has been saved.
func (s *TipoutService) GetLanguage(ctx context.Context, req *connect.Request[api.GetLanguageRequest]) (*connect.Response[api.GetLanguageResponse], error) {
	lang := s.session.ResolveLanguage(ctx, req.Msg.BrowserLanguage)
	return connect.NewResponse(&api.GetLanguageResponse{Language: string(lang)}), nil
}

// SetLanguage switches and persists the display language.
func (s *TipoutService) SetLanguage(ctx context.Context, req *connect.Request[api.SetLanguageRequest]) (*connect.Response[api.SetLanguageResponse], error) {
	lang, err := i18n.ParseLanguage(req.Msg.Language)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.session.SetLanguage(ctx, lang); err != nil {
		slog.Error("SetLanguage failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.SetLanguageResponse{Language: string(lang)}), nil
}
