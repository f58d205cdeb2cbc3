package votecooldown

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"vote-cooldown/votecooldown/application"
	"vote-cooldown/votecooldown/domain"
	"vote-cooldown/votecooldown/infra"

	"github.com/go-chi/chi/v5"
)

// MsgAlreadyVoted é a mensagem devolvida quando o site ainda está em cooldown
// (janela padrão de 12h; com Options.Cooldown diferente o texto acompanha).
const MsgAlreadyVoted = "You can only vote once every 12 hours per site"

type Options struct {
	// Store é o store compartilhado; cada cliente recebe um escopo próprio dentro dele.
	Store   domain.KVStore
	Catalog domain.SiteCatalog

	Stats     domain.StatsStore
	Publisher domain.VotePublisher
	Logger    *slog.Logger
	Now       func() time.Time
	Cooldown  time.Duration

	ClientHeader string
	SecureCookie bool

	// Throttle de POST /votes. Limiter nil desliga.
	Limiter             domain.LimiterStore
	KeyFn               KeyFunc
	ThrottleRetryAfter  time.Duration
	AddRateLimitHeaders bool

	// Stream de status.
	RefreshInterval   time.Duration
	StreamPool        domain.SlotPool
	StreamWaitTimeout time.Duration

	PublishTimeout time.Duration
}

// Handler é o adapter HTTP do tracker.
type Handler struct {
	opts       Options
	log        *slog.Logger
	msgBlocked string
}

func NewHandler(opts Options) *Handler {
	if opts.Store == nil {
		opts.Store = infra.NewMemoryKV()
	}
	if opts.Catalog == nil {
		// os sites padrão são válidos; o erro aqui é impossível
		opts.Catalog, _ = infra.NewStaticCatalog(infra.DefaultSites)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = domain.CooldownDuration
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 5 * time.Second
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = application.DefaultRefreshInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{opts: opts, log: logger, msgBlocked: alreadyVotedMessage(opts.Cooldown)}
}

// Routes devolve um router pronto para montar (ex: r.Mount("/vote", h.Routes())).
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.identify)

	r.Get("/sites", h.listSites)
	r.Get("/status", h.statusAll)
	r.Get("/status/stream", h.stream)
	r.Get("/status/{site}", h.statusOne)
	r.With(h.throttle).Post("/votes/{site}", h.vote)
	return r
}

func (h *Handler) now() time.Time { return h.opts.Now() }

// tracker monta o caso de uso com o escopo do cliente.
func (h *Handler) tracker(client string) application.Tracker {
	return application.Tracker{
		Store:    infra.Scoped(h.opts.Store, client),
		Cooldown: h.opts.Cooldown,
		OnError: func(op string, site domain.SiteID, err error) {
			h.log.Warn("cooldown store error, failing open",
				slog.String("op", op),
				slog.String("site", string(site)),
				slog.String("error", err.Error()))
		},
	}
}

type siteView struct {
	Site   domain.SiteID `json:"site"`
	URL    string        `json:"url"`
	Reward string        `json:"reward,omitempty"`
}

type statusView struct {
	siteView
	Available   bool       `json:"available"`
	RemainingMs int64      `json:"remaining_ms"`
	Countdown   string     `json:"countdown"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type snapshotView struct {
	Now   time.Time    `json:"now"`
	Sites []statusView `json:"sites"`
}

func newStatusView(site domain.Site, st domain.Status) statusView {
	v := statusView{
		siteView:    siteView{Site: site.ID, URL: site.URL, Reward: site.Reward},
		Available:   st.Available,
		RemainingMs: st.Remaining.Milliseconds(),
		Countdown:   FormatCountdown(st.Remaining),
	}
	if !st.Available {
		at := st.ExpiresAt.UTC()
		v.ExpiresAt = &at
	}
	return v
}

// snapshot roda o RefreshAll do cliente e devolve na ordem do catálogo.
func (h *Handler) snapshot(ctx context.Context, client string, now time.Time) snapshotView {
	statuses := h.tracker(client).RefreshAll(ctx, domain.SiteIDs(h.opts.Catalog.Sites()), now)

	out := snapshotView{Now: now.UTC(), Sites: make([]statusView, 0, len(statuses))}
	for _, s := range h.opts.Catalog.Sites() {
		out.Sites = append(out.Sites, newStatusView(s, statuses[s.ID]))
	}
	return out
}

func (h *Handler) listSites(w http.ResponseWriter, r *http.Request) {
	sites := h.opts.Catalog.Sites()
	out := make([]siteView, len(sites))
	for i, s := range sites {
		out[i] = siteView{Site: s.ID, URL: s.URL, Reward: s.Reward}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) statusAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot(r.Context(), ClientFromContext(r.Context()), h.now()))
}

func (h *Handler) statusOne(w http.ResponseWriter, r *http.Request) {
	site, ok := h.lookup(w, r)
	if !ok {
		return
	}
	st := h.tracker(ClientFromContext(r.Context())).QueryStatus(r.Context(), site.ID, h.now())
	writeJSON(w, http.StatusOK, newStatusView(site, st))
}

type voteResponse struct {
	statusView
	Message string `json:"message"`
}

// vote registra o voto e inicia o cooldown. O clique conta mesmo que o site
// externo não registre o voto.
func (h *Handler) vote(w http.ResponseWriter, r *http.Request) {
	site, ok := h.lookup(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	client := ClientFromContext(ctx)
	tr := h.tracker(client)
	now := h.now()

	if st := tr.QueryStatus(ctx, site.ID, now); !st.Available {
		h.recordStats(r, domain.VoteEvent{Client: client, Site: site.ID, Outcome: domain.OutcomeBlocked, At: now})
		w.Header().Set("Retry-After", formatInt(retryAfterSeconds(st.Remaining)))
		writeJSON(w, http.StatusConflict, voteResponse{statusView: newStatusView(site, st), Message: h.msgBlocked})
		return
	}

	if err := tr.RecordVote(ctx, site.ID, now); err != nil {
		h.log.Error("record vote failed",
			slog.String("site", string(site.ID)),
			slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "could not record vote, try again")
		return
	}

	ev := domain.VoteEvent{Client: client, Site: site.ID, Outcome: domain.OutcomeRecorded, At: now}
	h.recordStats(r, ev)
	h.publish(ctx, ev)

	if redirect := r.URL.Query().Get("redirect"); redirect == "1" || redirect == "true" {
		http.Redirect(w, r, site.URL, http.StatusSeeOther)
		return
	}

	st := tr.QueryStatus(ctx, site.ID, now)
	writeJSON(w, http.StatusOK, voteResponse{
		statusView: newStatusView(site, st),
		Message:    "Thank you for voting on " + string(site.ID) + "!",
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (domain.Site, bool) {
	id := siteParam(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, domain.ErrEmptySite.Error())
		return domain.Site{}, false
	}
	site, ok := h.opts.Catalog.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrUnknownSite.Error())
		return domain.Site{}, false
	}
	return site, true
}

func siteParam(r *http.Request) domain.SiteID {
	raw := chi.URLParam(r, "site")
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return domain.SiteID(raw)
}

// recordStats é best-effort: erro só vai para o log.
func (h *Handler) recordStats(r *http.Request, ev domain.VoteEvent) {
	if h.opts.Stats == nil {
		return
	}
	if err := h.opts.Stats.Record(r.Context(), ev); err != nil {
		h.log.Warn("stats record failed", slog.String("error", err.Error()))
	}
}

// publish também é best-effort: o voto já foi gravado.
func (h *Handler) publish(ctx context.Context, ev domain.VoteEvent) {
	if h.opts.Publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.opts.PublishTimeout)
	defer cancel()
	if err := h.opts.Publisher.Publish(pubCtx, ev); err != nil {
		h.log.Warn("vote publish failed",
			slog.String("site", string(ev.Site)),
			slog.String("error", err.Error()))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
