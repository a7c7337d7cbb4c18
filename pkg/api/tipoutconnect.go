package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// TipoutServiceName is the fully-qualified name of the TipoutService service.
const TipoutServiceName = "tipout.v1.TipoutService"

// Procedure paths, mounted on the server's mux.
const (
	TipoutServiceCalculateProcedure    = "/tipout.v1.TipoutService/Calculate"
	TipoutServiceListHistoryProcedure  = "/tipout.v1.TipoutService/ListHistory"
	TipoutServiceClearHistoryProcedure = "/tipout.v1.TipoutService/ClearHistory"
	TipoutServiceSelectEntryProcedure  = "/tipout.v1.TipoutService/SelectEntry"
	TipoutServiceGetLanguageProcedure  = "/tipout.v1.TipoutService/GetLanguage"
	TipoutServiceSetLanguageProcedure  = "/tipout.v1.TipoutService/SetLanguage"
)

// TipoutServiceHandler is implemented by the session service.
type TipoutServiceHandler interface {
	Calculate(context.Context, *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error)
	ListHistory(context.Context, *connect.Request[ListHistoryRequest]) (*connect.Response[ListHistoryResponse], error)
	ClearHistory(context.Context, *connect.Request[ClearHistoryRequest]) (*connect.Response[ClearHistoryResponse], error)
	SelectEntry(context.Context, *connect.Request[SelectEntryRequest]) (*connect.Response[SelectEntryResponse], error)
	GetLanguage(context.Context, *connect.Request[GetLanguageRequest]) (*connect.Response[GetLanguageResponse], error)
	SetLanguage(context.Context, *connect.Request[SetLanguageRequest]) (*connect.Response[SetLanguageResponse], error)
}

// NewTipoutServiceHandler builds an HTTP handler for svc. It returns the path
// prefix to mount it on.
func NewTipoutServiceHandler(svc TipoutServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(TipoutServiceCalculateProcedure,
		connect.NewUnaryHandler(TipoutServiceCalculateProcedure, svc.Calculate, opts...))
	mux.Handle(TipoutServiceListHistoryProcedure,
		connect.NewUnaryHandler(TipoutServiceListHistoryProcedure, svc.ListHistory, opts...))
	mux.Handle(TipoutServiceClearHistoryProcedure,
		connect.NewUnaryHandler(TipoutServiceClearHistoryProcedure, svc.ClearHistory, opts...))
	mux.Handle(TipoutServiceSelectEntryProcedure,
		connect.NewUnaryHandler(TipoutServiceSelectEntryProcedure, svc.SelectEntry, opts...))
	mux.Handle(TipoutServiceGetLanguageProcedure,
		connect.NewUnaryHandler(TipoutServiceGetLanguageProcedure, svc.GetLanguage, opts...))
	mux.Handle(TipoutServiceSetLanguageProcedure,
		connect.NewUnaryHandler(TipoutServiceSetLanguageProcedure, svc.SetLanguage, opts...))

	return "/" + TipoutServiceName + "/", mux
}

// TipoutServiceClient calls a TipoutService over HTTP.
type TipoutServiceClient struct {
	calculate    *connect.Client[CalculateRequest, CalculateResponse]
	listHistory  *connect.Client[ListHistoryRequest, ListHistoryResponse]
	clearHistory *connect.Client[ClearHistoryRequest, ClearHistoryResponse]
	selectEntry  *connect.Client[SelectEntryRequest, SelectEntryResponse]
	getLanguage  *connect.Client[GetLanguageRequest, GetLanguageResponse]
	setLanguage  *connect.Client[SetLanguageRequest, SetLanguageResponse]
}

// NewTipoutServiceClient creates a client for the service at baseURL
// (e.g. http://127.0.0.1:8080).
func NewTipoutServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TipoutServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &TipoutServiceClient{
		calculate: connect.NewClient[CalculateRequest, CalculateResponse](
			httpClient, baseURL+TipoutServiceCalculateProcedure, opts...),
		listHistory: connect.NewClient[ListHistoryRequest, ListHistoryResponse](
			httpClient, baseURL+TipoutServiceListHistoryProcedure, opts...),
		clearHistory: connect.NewClient[ClearHistoryRequest, ClearHistoryResponse](
			httpClient, baseURL+TipoutServiceClearHistoryProcedure, opts...),
		selectEntry: connect.NewClient[SelectEntryRequest, SelectEntryResponse](
			httpClient, baseURL+TipoutServiceSelectEntryProcedure, opts...),
		getLanguage: connect.NewClient[GetLanguageRequest, GetLanguageResponse](
			httpClient, baseURL+TipoutServiceGetLanguageProcedure, opts...),
		setLanguage: connect.NewClient[SetLanguageRequest, SetLanguageResponse](
			httpClient, baseURL+TipoutServiceSetLanguageProcedure, opts...),
	}
}

func (c *TipoutServiceClient) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *TipoutServiceClient) ListHistory(ctx context.Context, req *connect.Request[ListHistoryRequest]) (*connect.Response[ListHistoryResponse], error) {
	return c.listHistory.CallUnary(ctx, req)
}

func (c *TipoutServiceClient) ClearHistory(ctx context.Context, req *connect.Request[ClearHistoryRequest]) (*connect.Response[ClearHistoryResponse], error) {
	return c.clearHistory.CallUnary(ctx, req)
}

func (c *TipoutServiceClient) SelectEntry(ctx context.Context, req *connect.Request[SelectEntryRequest]) (*connect.Response[SelectEntryResponse], error) {
	return c.selectEntry.CallUnary(ctx, req)
}

func (c *TipoutServiceClient) GetLanguage(ctx context.Context, req *connect.Request[GetLanguageRequest]) (*connect.Response[GetLanguageResponse], error) {
	return c.getLanguage.CallUnary(ctx, req)
}

func (c *TipoutServiceClient) SetLanguage(ctx context.Context, req *connect.Request[SetLanguageRequest]) (*connect.Response[SetLanguageResponse], error) {
	return c.setLanguage.CallUnary(ctx, req)
}
