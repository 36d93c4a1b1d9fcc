package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/export"
	applog "github.com/piwi3910/MachCost/internal/log"
	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/project"
)

const dateLayout = "2006-01-02"

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// EstimateResponse returns the rounded result with display strings.
type EstimateResponse struct {
	Units     model.UnitSystem        `json:"units"`
	Material  model.MaterialInput     `json:"material"`
	Finishing []string                `json:"finishing"`
	Result    model.CalculationResult `json:"result"`
	Display   EstimateDisplay         `json:"display"`
}

type EstimateDisplay struct {
	CostPerPiece     string `json:"cost_per_piece"`
	TotalLotCost     string `json:"total_lot_cost"`
	MaterialCost     string `json:"material_cost"`
	TotalMachineTime string `json:"total_machine_time"`
	Batches          string `json:"batches"`
	Finishing        string `json:"finishing"`
}

func newEstimateResponse(j model.JobParameters, res model.CalculationResult) EstimateResponse {
	return EstimateResponse{
		Units:     j.Units(),
		Material:  j.Material,
		Finishing: j.Finishing.Names(),
		Result:    res.Rounded(),
		Display: EstimateDisplay{
			CostPerPiece:     model.FormatMoney(res.CostPerPiece),
			TotalLotCost:     model.FormatMoney(res.TotalLotCost),
			MaterialCost:     model.FormatMoney(res.MaterialCost),
			TotalMachineTime: model.FormatHours(res.TotalMachineTime),
			Batches:          model.FormatBatches(res.Batches),
			Finishing:        j.Finishing.Summary(),
		},
	}
}

// calculate decodes an estimate request and runs it against the current catalog.
func (s *Server) calculate(r *http.Request) (EstimateRequest, model.Catalog, model.JobParameters, model.CalculationResult, error) {
	var req EstimateRequest
	if err := s.decode(r, &req); err != nil {
		return req, model.Catalog{}, model.JobParameters{}, model.CalculationResult{}, err
	}
	cat := s.catalog(r.Context())
	job, err := req.Job(cat, s.defaults)
	if err != nil {
		return req, cat, job, model.CalculationResult{}, err
	}
	res, err := model.Calculate(job)
	return req, cat, job, res, err
}

func (s *Server) estimate(w http.ResponseWriter, r *http.Request) {
	const op = "server.estimate"

	_, _, job, res, err := s.calculate(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	render.JSON(w, r, newEstimateResponse(job, res))
}

func (s *Server) volume(w http.ResponseWriter, r *http.Request) {
	const op = "server.volume"

	var req VolumeRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	units := s.units(req.Units)
	v, err := model.CalculateVolume(req.PartGeometry, units)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"volume": v,
		"unit":   units.VolumeUnit(),
		"shape":  req.PartGeometry.Shape().String(),
	})
}

func (s *Server) batches(w http.ResponseWriter, r *http.Request) {
	const op = "server.batches"

	var req BatchRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	b := model.DistributeBatches(req.Quantity, req.SetupCount)
	render.JSON(w, r, map[string]any{
		"batches": b,
		"text":    model.FormatBatches(b),
	})
}

func (s *Server) convertUnits(w http.ResponseWriter, r *http.Request) {
	const op = "server.convertUnits"

	var req ConvertRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	in := model.MaterialInput{
		MaterialID:  req.MaterialID,
		Volume:      req.Volume,
		Density:     req.Density,
		CostPerMass: req.CostPerMass,
		Units:       s.units(req.From),
	}
	out := s.catalog(r.Context()).SwitchUnits(in, s.units(req.To))
	render.JSON(w, r, out)
}

// MaterialView is one catalog material priced in the requested regime.
type MaterialView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Density     float64 `json:"density"`
	DensityUnit string  `json:"density_unit"`
	CostPerMass float64 `json:"cost_per_mass"`
	CostUnit    string  `json:"cost_unit"`
	CostPerKg   float64 `json:"cost_per_kg"`
}

func (s *Server) listMaterials(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog(r.Context())
	units := s.units(r.URL.Query().Get("units"))

	views := make([]MaterialView, 0, len(cat.Materials))
	for _, m := range cat.Materials {
		cost, _ := cat.CostPerMass(m.ID, units)
		views = append(views, MaterialView{
			ID:          m.ID,
			Name:        m.Name,
			Density:     m.Density(units),
			DensityUnit: units.DensityUnit(),
			CostPerMass: cost,
			CostUnit:    "$/" + units.MassUnit(),
			CostPerKg:   cat.Costs[m.ID],
		})
	}
	render.JSON(w, r, views)
}

func (s *Server) updateMaterialCosts(w http.ResponseWriter, r *http.Request) {
	const op = "server.updateMaterialCosts"

	var req MaterialCostsRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	s.costsMu.Lock()
	defer s.costsMu.Unlock()
	table := project.LoadMaterialCosts(r.Context(), s.store)
	for _, id := range model.MaterialCostTable(req.Costs).IDs() {
		if err := table.Set(id, req.Costs[id]); err != nil {
			s.fail(w, r, op, err)
			return
		}
	}
	if err := project.SaveMaterialCosts(r.Context(), s.store, table); err != nil {
		s.fail(w, r, op, err)
		return
	}
	s.logger.Info("material costs updated", zap.Int("changed", len(req.Costs)))
	render.JSON(w, r, table)
}

func (s *Server) resetMaterialCosts(w http.ResponseWriter, r *http.Request) {
	const op = "server.resetMaterialCosts"

	s.costsMu.Lock()
	defer s.costsMu.Unlock()
	table, err := project.ResetMaterialCosts(r.Context(), s.store)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	render.JSON(w, r, table)
}

func (s *Server) compareMaterials(w http.ResponseWriter, r *http.Request) {
	const op = "server.compareMaterials"

	var req CompareRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	rows, err := s.catalog(r.Context()).CompareMaterials(req.Volume, s.units(req.Units), qty)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	cheapest, _ := model.CheapestMaterial(rows)
	render.JSON(w, r, map[string]any{
		"materials": rows,
		"cheapest":  cheapest.MaterialID,
	})
}

func (s *Server) listFinishing(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.catalog(r.Context()).Finishing)
}

func (s *Server) listQuotes(w http.ResponseWriter, r *http.Request) {
	const op = "server.listQuotes"

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.fail(w, r, op, &model.ValidationError{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}
	if s.quotesPath == "" {
		render.JSON(w, r, []model.Quote{})
		return
	}
	qs, err := project.LoadQuotes(s.quotesPath)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	render.JSON(w, r, qs.Latest(limit))
}

var documentTypes = map[string]string{
	"html": "text/html; charset=utf-8",
	"pdf":  "application/pdf",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// quoteDocument calculates the posted job, records it in the quote history
// and returns it as an HTML, PDF or Excel document.
func (s *Server) quoteDocument(w http.ResponseWriter, r *http.Request) {
	const op = "server.quoteDocument"

	format := chi.URLParam(r, "format")
	contentType, ok := documentTypes[format]
	if !ok {
		s.notFound(w, r, fmt.Sprintf("unknown document format %q", format))
		return
	}

	req, cat, job, res, err := s.calculate(r)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	q := model.NewQuote(cat, job, res)
	q.Customer = req.Customer

	var buf bytes.Buffer
	switch format {
	case "html":
		err = export.RenderQuoteHTML(&buf, q)
	case "pdf":
		err = export.WriteQuotePDF(&buf, q)
	case "xlsx":
		var comparison []model.MaterialComparison
		if job.Material.Volume > 0 {
			comparison, _ = cat.CompareMaterials(job.Material.Volume, job.Units(), job.Quantity)
		}
		err = export.WriteQuoteXLSX(&buf, q, comparison)
	}
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	if s.quotesPath != "" {
		if err := project.AppendQuote(s.quotesPath, q, s.defaults.MaxSavedQuotes); err != nil {
			s.logger.Warn("failed to save quote", zap.String("quote_id", q.ID), zap.Error(err))
		}
	}

	disposition := "attachment"
	if format == "html" {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, export.FileName(q, format)))
	w.Header().Set(applog.QuoteIDHeader, q.ID)
	_, _ = w.Write(buf.Bytes())
}

// ConsentResponse reports the stored consent decision.
type ConsentResponse struct {
	Decided   bool               `json:"decided"`
	Level     model.ConsentLevel `json:"level,omitempty"`
	Timestamp *time.Time         `json:"timestamp,omitempty"`
}

func newConsentResponse(c model.Consent, ok bool) ConsentResponse {
	resp := ConsentResponse{Decided: ok, Level: c.Level}
	if ok && !c.Timestamp.IsZero() {
		ts := c.Timestamp
		resp.Timestamp = &ts
	}
	return resp
}

func (s *Server) getConsent(w http.ResponseWriter, r *http.Request) {
	const op = "server.getConsent"

	c, ok, err := project.LoadConsent(r.Context(), s.store)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	render.JSON(w, r, newConsentResponse(c, ok))
}

func (s *Server) putConsent(w http.ResponseWriter, r *http.Request) {
	const op = "server.putConsent"

	var req ConsentRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	c, err := project.SaveConsent(r.Context(), s.store, model.ConsentLevel(req.Level), s.now())
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	render.JSON(w, r, newConsentResponse(c, true))
}

func (s *Server) leadTime(w http.ResponseWriter, r *http.Request) {
	const op = "server.leadTime"

	var req LeadTimeRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.Start != "" {
		parsed, err := time.Parse(dateLayout, req.Start)
		if err != nil {
			s.fail(w, r, op, &model.ValidationError{Field: "start", Message: "must be a date formatted as " + dateLayout})
			return
		}
		start = parsed
	}
	unit, err := model.ParseLeadTimeUnit(req.Unit)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	delivery, err := model.AddLeadTime(start, req.Amount, unit)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	render.JSON(w, r, map[string]string{
		"start":    start.Format(dateLayout),
		"delivery": delivery.Format(dateLayout),
		"weekday":  delivery.Weekday().String(),
	})
}

// getBranding returns the ad placement only when one is configured and the
// user accepted optional content.
func (s *Server) getBranding(w http.ResponseWriter, r *http.Request) {
	const op = "server.getBranding"

	c, ok, err := project.LoadConsent(r.Context(), s.store)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	if !ok || !c.AllowsOptional() || !s.branding.Enabled() {
		render.JSON(w, r, map[string]any{"enabled": false})
		return
	}
	render.JSON(w, r, map[string]any{
		"enabled":   true,
		"ad_client": s.branding.AdClient,
		"ad_slot":   s.branding.AdSlot,
		"ad_format": s.branding.AdFormat,
	})
}
