// components/feedback/feedback.go
//
// Feedback component – the customer-facing page and the JSON endpoint.
//
// Routes
// ------
//   - GET  /, /feedback   – empty form with a fresh guard token.
//   - POST /feedback      – urlencoded post from the page itself.
//   - POST /api/feedback  – JSON contract (internal/api).
//
// The page post walks the same path the interactive client does: posted
// values are replayed onto a form.State, form.Submit runs the client rules
// and hands a clean form to the Submitter.  Success re-renders an empty
// form under a thank-you panel; any failure re-renders with the customer's
// values intact.
package feedback

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/feedback/internal/api"
	"github.com/yanizio/feedback/internal/component"
	"github.com/yanizio/feedback/internal/feedback"
	"github.com/yanizio/feedback/internal/form"
	"github.com/yanizio/feedback/internal/head"
	"github.com/yanizio/feedback/internal/logger"
	"github.com/yanizio/feedback/internal/relay"
	"github.com/yanizio/feedback/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

const brand = "Green Thumb Landscaping Services"

// compile-time assertions
var (
	_ component.Component   = (*Component)(nil)
	_ component.Initializer = (*Component)(nil)
)

// Component implements component.Component.
type Component struct {
	def   *form.Definition
	views *view.Engine
	guard *form.Guard
	sub   form.Submitter
	api   *api.Handler
}

// Register component at package init.
func init() { component.Register(&Component{}) }

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string { return "feedback" }

// Init wires the submitter and parses the page templates.
func (c *Component) Init(d component.Deps) error {
	if d.Submitter == nil {
		return errors.New("feedback: no submitter configured")
	}

	def, err := form.Feedback()
	if err != nil {
		return err
	}
	views, err := view.New(templatesFS, "templates/*.html")
	if err != nil {
		return err
	}

	guard := d.Guard
	if guard == nil {
		if guard, err = form.NewGuard(""); err != nil {
			return err
		}
	}
	if guard.Ephemeral() && d.Log != nil {
		d.Log.Warnw("form guard key not configured; tokens reset on restart")
	}

	c.def, c.views, c.guard, c.sub = def, views, guard, d.Submitter
	c.api = api.New(d.Submitter)
	return nil
}

// Routes adds the page and API endpoints to the root router.
func (c *Component) Routes(r chi.Router) {
	r.Get("/", c.handlePage)
	r.Get("/feedback", c.handlePage)
	r.Post("/feedback", c.handlePost)
	r.Mount("/api", c.api.Routes())
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

// page is the template data for feedback.html.
type page struct {
	Head     *head.Builder
	Brand    string
	Form     *form.Definition
	Fields   template.HTML
	Token    string
	Alert    string
	Problems []string
	ThankYou *thanks
}

type thanks struct {
	Name      string
	Rating    int
	Recommend string
	Message   string
}

func (c *Component) handlePage(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, form.New(), page{})
}

func (c *Component) handlePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, api.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		log.Infow("feedback form body rejected", "error", err)
		c.render(w, r, http.StatusBadRequest, form.New(), page{Alert: "We could not read that form.  Please try again."})
		return
	}

	state := form.FromValues(c.def, r.PostForm)

	if err := c.guard.Verify(r.PostForm.Get(form.TokenField)); err != nil {
		log.Infow("feedback form guard rejected", "error", err)
		c.render(w, r, http.StatusBadRequest, state, page{Alert: form.GuardMessage(err)})
		return
	}

	submitted := state.Values
	next, out := form.Submit(r.Context(), state, c.sub)

	var verr *feedback.ValidationError
	switch {
	case out.Focus != "":
		c.render(w, r, http.StatusBadRequest, next, page{Alert: feedback.InvalidMessage})
	case out.Sent:
		c.render(w, r, http.StatusOK, next, page{ThankYou: &thanks{
			Name:      submitted.Name,
			Rating:    submitted.Rating.Stars(),
			Recommend: submitted.WouldRecommend,
			Message:   out.Message,
		}})
	case errors.Is(out.Err, feedback.ErrMissingRequired):
		c.render(w, r, http.StatusBadRequest, next, page{Alert: feedback.RequiredFieldsMessage})
	case errors.As(out.Err, &verr):
		c.render(w, r, http.StatusBadRequest, next, page{Alert: feedback.InvalidMessage, Problems: problems(verr)})
	default:
		log.Errorw("feedback page submission failed", "error", out.Err)
		c.render(w, r, http.StatusInternalServerError, next, page{Alert: relay.FailureMessage})
	}
}

// render fills the shared page fields and writes the template.
func (c *Component) render(w http.ResponseWriter, r *http.Request, status int, s form.State, p page) {
	log := logger.FromContext(r.Context())

	fields, err := form.RenderFields(c.def, s)
	if err != nil {
		c.fail(w, log, err)
		return
	}
	tok, err := c.guard.Token()
	if err != nil {
		c.fail(w, log, err)
		return
	}

	hb := head.New()
	hb.SetTitle(c.def.Title + " – " + brand)
	hb.MetaName("description", c.def.Intro)
	hb.MetaName("robots", "noindex")
	hb.LinkRel("canonical", "/feedback")

	p.Head, p.Brand, p.Form, p.Fields, p.Token = hb, brand, c.def, fields, tok
	if err := c.views.Render(w, status, "feedback", p); err != nil {
		c.fail(w, log, err)
	}
}

func (c *Component) fail(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	log.Errorw("feedback page render failed", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// problems lists server-side field messages in a stable order.
func problems(verr *feedback.ValidationError) []string {
	names := make([]string, 0, len(verr.Fields))
	for n := range verr.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, verr.Fields[n])
	}
	return out
}
