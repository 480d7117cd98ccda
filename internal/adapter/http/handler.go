package http

import (
	"context"
	"io"
	"net/url"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/section"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Sessions owns the live documents. With and View hold the session's lock
// for the duration of fn.
type Sessions interface {
	Create(ctx context.Context, doc *model.Resume) (*domain.Session, error)
	With(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) error
	View(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ExportLister interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.ExportRecord, error)
}

type Handler struct {
	sessions Sessions
	editor   *usecase.Editor
	enricher *usecase.Enricher
	exporter *usecase.Exporter
	html     *render.Renderer
	exports  ExportLister
	log      logger.Logger
}

type Deps struct {
	Sessions Sessions
	Editor   *usecase.Editor
	Enricher *usecase.Enricher
	Exporter *usecase.Exporter
	HTML     *render.Renderer
	Exports  ExportLister
	Log      logger.Logger
}

func NewHandler(d Deps) *Handler {
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	return &Handler{
		sessions: d.Sessions,
		editor:   d.Editor,
		enricher: d.Enricher,
		exporter: d.Exporter,
		html:     d.HTML,
		exports:  d.Exports,
		log:      d.Log,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r fiber.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/:id", h.GetSession)
	r.Delete("/sessions/:id", h.DeleteSession)

	r.Get("/sessions/:id/sections", h.ListSections)
	r.Get("/sessions/:id/sections/available", h.AvailableSections)
	r.Post("/sessions/:id/sections", h.AddSection)
	r.Post("/sessions/:id/sections/custom", h.AddCustomSection)
	r.Put("/sessions/:id/sections/order", h.ReorderSections)
	r.Post("/sessions/:id/sections/move", h.MoveSection)
	r.Delete("/sessions/:id/sections/:key", h.RemoveSection)
	r.Put("/sessions/:id/custom-sections/:cid", h.UpdateCustomSection)
	r.Delete("/sessions/:id/custom-sections/:cid", h.DeleteCustomSection)

	r.Put("/sessions/:id/personal-info", h.SetPersonalInfo)
	r.Put("/sessions/:id/summary", h.SetSummary)

	r.Post("/sessions/:id/items/:collection", h.AddItem)
	r.Put("/sessions/:id/items/:collection/:itemId", h.UpdateItem)
	r.Delete("/sessions/:id/items/:collection/:itemId", h.RemoveItem)

	r.Post("/sessions/:id/experience/:expId/responsibilities", h.AddResponsibility)
	r.Put("/sessions/:id/experience/:expId/responsibilities/:index", h.UpdateResponsibility)
	r.Delete("/sessions/:id/experience/:expId/responsibilities/:index", h.RemoveResponsibility)

	r.Post("/sessions/:id/skills", h.AddSkill)
	r.Delete("/sessions/:id/skills/:skill", h.RemoveSkill)

	r.Post("/sessions/:id/import", h.Import)
	r.Post("/sessions/:id/analyze", h.Analyze)
	r.Post("/sessions/:id/analysis/apply", h.ApplyAnalysis)
	r.Post("/rewrite", h.Rewrite)

	r.Get("/sessions/:id/preview", h.Preview)
	r.Post("/sessions/:id/export", h.Export)
	r.Get("/sessions/:id/exports", h.ListExports)

	r.Get("/styles", h.Styles)
	r.Put("/credential", h.SetCredential)
}

// MetricsHandler serves the Prometheus text format for g.
func MetricsHandler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := apperror.ToHTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error("request failed", err, zap.String("path", c.Path()), zap.Int("status", status))
	}
	return c.Status(status).JSON(apperror.ToJSON(err))
}

func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NewNotFound("session", c.Params("id"))
	}
	return id, nil
}

// param returns a path parameter with percent-escapes decoded. The result
// is copied out of the request buffer since it may end up in a document.
func param(c *fiber.Ctx, name string) string {
	raw := utils.CopyString(c.Params(name))
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func bind(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.NewInvalidInput("invalid payload", err)
	}
	return validateStruct(out)
}

// mutate runs fn on the session's document under its lock and answers with
// the resulting document.
func (h *Handler) mutate(c *fiber.Ctx, fn func(doc *model.Resume) error) error {
	return h.mutateWith(c, fiber.StatusOK, func(doc *model.Resume) (interface{}, error) {
		if err := fn(doc); err != nil {
			return nil, err
		}
		return doc, nil
	})
}

func (h *Handler) mutateWith(c *fiber.Ctx, status int, fn func(doc *model.Resume) (interface{}, error)) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	err = h.sessions.With(c.UserContext(), id, func(s *domain.Session) error {
		body, err := fn(s.Doc)
		if err != nil {
			return err
		}
		return c.Status(status).JSON(body)
	})
	if err != nil {
		return h.fail(c, err)
	}
	return nil
}

func (h *Handler) view(c *fiber.Ctx, fn func(s *domain.Session) error) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.sessions.View(c.UserContext(), id, fn); err != nil {
		return h.fail(c, err)
	}
	return nil
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req createSessionReq
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return h.fail(c, err)
		}
	}
	doc, ok := model.NewFromStarter(req.Template)
	if !ok {
		return h.fail(c, apperror.NewInvalidInput("unknown template", nil))
	}
	sess, err := h.sessions.Create(c.UserContext(), doc)
	if err != nil {
		return h.fail(c, err)
	}
	h.log.Info("session created", zap.String("session_id", sess.ID.String()), zap.String("template", req.Template))
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	return h.view(c, func(s *domain.Session) error { return c.JSON(s) })
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.sessions.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ListSections(c *fiber.Ctx) error {
	return h.view(c, func(s *domain.Session) error {
		return c.JSON(sectionsResp{Order: section.Entries(s.Doc), Available: section.AvailableToAdd(s.Doc)})
	})
}

func (h *Handler) AvailableSections(c *fiber.Ctx) error {
	return h.view(c, func(s *domain.Session) error {
		return c.JSON(fiber.Map{"available": section.AvailableToAdd(s.Doc)})
	})
}

func (h *Handler) AddSection(c *fiber.Ctx) error {
	var req addSectionReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.AddFixedSection(doc, req.Key) })
}

func (h *Handler) AddCustomSection(c *fiber.Ctx) error {
	var req customSectionReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutateWith(c, fiber.StatusCreated, func(doc *model.Resume) (interface{}, error) {
		cs, err := h.editor.AddCustomSection(doc, req.Title, req.Content)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"section": cs, "document": doc}, nil
	})
}

func (h *Handler) UpdateCustomSection(c *fiber.Ctx) error {
	var req customSectionReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	cid := param(c, "cid")
	return h.mutate(c, func(doc *model.Resume) error {
		return h.editor.UpdateCustomSection(doc, cid, req.Title, req.Content)
	})
}

func (h *Handler) RemoveSection(c *fiber.Ctx) error {
	key := param(c, "key")
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.RemoveSection(doc, key) })
}

func (h *Handler) DeleteCustomSection(c *fiber.Ctx) error {
	cid := param(c, "cid")
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.RemoveCustomSectionPermanently(doc, cid) })
}

func (h *Handler) ReorderSections(c *fiber.Ctx) error {
	var req orderReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.ReorderSections(doc, req.Order) })
}

func (h *Handler) MoveSection(c *fiber.Ctx) error {
	var req moveReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.MoveSection(doc, *req.From, *req.To) })
}

func (h *Handler) SetPersonalInfo(c *fiber.Ctx) error {
	var req personalInfoReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.SetPersonalInfo(doc, req.toModel()) })
}

func (h *Handler) SetSummary(c *fiber.Ctx) error {
	var req summaryReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.SetSummary(doc, req.Summary) })
}

// decodeItem parses the body into the element type of collection.
func decodeItem(c *fiber.Ctx, collection model.Collection) (interface{}, error) {
	var (
		item interface{}
		err  error
	)
	switch collection {
	case model.CollectionExperience:
		var v model.Experience
		err = c.BodyParser(&v)
		item = v
	case model.CollectionEducation:
		var v model.Education
		err = c.BodyParser(&v)
		item = v
	case model.CollectionProjects:
		var v model.Project
		err = c.BodyParser(&v)
		item = v
	case model.CollectionCertifications:
		var v model.Certification
		err = c.BodyParser(&v)
		item = v
	}
	if err != nil {
		return nil, apperror.NewInvalidInput("invalid payload", err)
	}
	return item, nil
}

func withID(item interface{}, id string) interface{} {
	switch v := item.(type) {
	case model.Experience:
		v.ID = id
		return v
	case model.Education:
		v.ID = id
		return v
	case model.Project:
		v.ID = id
		return v
	case model.Certification:
		v.ID = id
		return v
	}
	return item
}

func collectionParam(c *fiber.Ctx) (model.Collection, error) {
	name := param(c, "collection")
	coll, ok := model.ParseCollection(name)
	if !ok {
		return "", apperror.NewInvalidInput("unknown collection '"+name+"'", nil)
	}
	return coll, nil
}

func (h *Handler) AddItem(c *fiber.Ctx) error {
	coll, err := collectionParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	item, err := decodeItem(c, coll)
	if err != nil {
		return h.fail(c, err)
	}
	return h.mutateWith(c, fiber.StatusCreated, func(doc *model.Resume) (interface{}, error) {
		id, err := h.editor.AddListItem(doc, coll, item)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"id": id, "document": doc}, nil
	})
}

func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	coll, err := collectionParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	item, err := decodeItem(c, coll)
	if err != nil {
		return h.fail(c, err)
	}
	item = withID(item, param(c, "itemId"))
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.UpdateListItem(doc, coll, item) })
}

func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	coll, err := collectionParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	id := param(c, "itemId")
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.RemoveListItem(doc, coll, id) })
}

func (h *Handler) AddResponsibility(c *fiber.Ctx) error {
	var req textReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	expID := param(c, "expId")
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.AddResponsibility(doc, expID, req.Text) })
}

func (h *Handler) UpdateResponsibility(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return h.fail(c, apperror.NewInvalidInput("index must be an integer", err))
	}
	var req textReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	expID := param(c, "expId")
	return h.mutate(c, func(doc *model.Resume) error {
		return h.editor.UpdateResponsibility(doc, expID, index, req.Text)
	})
}

func (h *Handler) RemoveResponsibility(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return h.fail(c, apperror.NewInvalidInput("index must be an integer", err))
	}
	expID := param(c, "expId")
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.RemoveResponsibility(doc, expID, index) })
}

func (h *Handler) AddSkill(c *fiber.Ctx) error {
	var req skillReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutateWith(c, fiber.StatusOK, func(doc *model.Resume) (interface{}, error) {
		added, err := h.editor.AddSkill(doc, req.Skill)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"added": added, "document": doc}, nil
	})
}

func (h *Handler) RemoveSkill(c *fiber.Ctx) error {
	skill := param(c, "skill")
	return h.mutate(c, func(doc *model.Resume) error { return h.editor.RemoveSkill(doc, skill) })
}

// Import accepts a multipart "file" (PDF or image) or a JSON {html} body.
// The gateway call runs while the session is locked and the merge happens
// only after it has resolved.
func (h *Handler) Import(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return h.fail(c, apperror.NewInvalidInput("file is required", err))
		}
		f, err := fh.Open()
		if err != nil {
			return h.fail(c, apperror.NewInvalidInput("could not read the upload", err))
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return h.fail(c, apperror.NewInvalidInput("could not read the upload", err))
		}
		mime := fh.Header.Get(fiber.HeaderContentType)
		return h.mutate(c, func(doc *model.Resume) error { return h.enricher.ImportFile(ctx, doc, mime, data) })
	}

	var req importTextReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(doc *model.Resume) error { return h.enricher.ImportText(ctx, doc, req.HTML) })
}

func (h *Handler) Analyze(c *fiber.Ctx) error {
	var req analyzeReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	ctx := c.UserContext()
	return h.view(c, func(s *domain.Session) error {
		a, err := h.enricher.Analyze(ctx, s.Doc, req.JobDescription)
		if err != nil {
			return err
		}
		return c.JSON(a)
	})
}

func (h *Handler) ApplyAnalysis(c *fiber.Ctx) error {
	var a model.Analysis
	if err := c.BodyParser(&a); err != nil {
		return h.fail(c, apperror.NewInvalidInput("invalid payload", err))
	}
	return h.mutate(c, func(doc *model.Resume) error { return h.enricher.ApplyAnalysis(doc, &a) })
}

func (h *Handler) Rewrite(c *fiber.Ctx) error {
	var req rewriteReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	out, err := h.enricher.Rewrite(c.UserContext(), req.Text, req.Context, req.JobDescription)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"text": out})
}

// style reads template, font and accent from the query string. localized=true
// swaps in gateway-translated headings when they are available.
func (h *Handler) style(c *fiber.Ctx) (render.Style, error) {
	st, err := render.ParseStyle(c.Query("template"), c.Query("font"), c.Query("accent"))
	if err != nil {
		return st, err
	}
	if c.QueryBool("localized") && h.enricher != nil {
		st.Labels = h.enricher.Labels(c.UserContext())
	}
	return st, nil
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	st, err := h.style(c)
	if err != nil {
		return h.fail(c, err)
	}
	return h.view(c, func(s *domain.Session) error {
		page, err := h.html.Render(s.Doc, st, render.Screen)
		if err != nil {
			return apperror.NewInternal("could not render the preview", err)
		}
		c.Type("html", "utf-8")
		return c.Send(page)
	})
}

// Export snapshots the document under the lock and renders the PDF outside
// it so a slow layout engine does not block editing.
func (h *Handler) Export(c *fiber.Ctx) error {
	st, err := h.style(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var snapshot *model.Resume
	if err := h.sessions.View(c.UserContext(), id, func(s *domain.Session) error {
		snapshot = s.Doc.Clone()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	res, err := h.exporter.Export(c.UserContext(), id, snapshot, st)
	if err != nil {
		return h.fail(c, err)
	}
	c.Attachment(res.FileName)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(res.PDF)
}

func (h *Handler) ListExports(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	if h.exports == nil {
		return c.JSON([]domain.ExportRecord{})
	}
	list, err := h.exports.ListBySession(c.UserContext(), id)
	if err != nil {
		return h.fail(c, apperror.NewInternal("could not list exports", err))
	}
	return c.JSON(list)
}

// Styles lists the whitelisted templates, fonts and default accent colours.
func (h *Handler) Styles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"templates": []render.Variant{render.TemplateA, render.TemplateB},
		"fonts":     render.Fonts,
		"palette":   render.Palette,
	})
}

func (h *Handler) SetCredential(c *fiber.Ctx) error {
	var req credentialReq
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	if err := h.enricher.SetAPIKey(c.UserContext(), req.APIKey); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
