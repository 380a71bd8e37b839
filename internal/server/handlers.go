package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/sensei/internal/capture"
	"github.com/abhisek/sensei/internal/coach"
	"github.com/abhisek/sensei/internal/feedback"
	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/pose"
	"github.com/abhisek/sensei/internal/prompt"
	"github.com/abhisek/sensei/internal/server/respond"
	"github.com/abhisek/sensei/internal/store"
	"github.com/abhisek/sensei/internal/technique"
)

const (
	// maxAnalysisBody caps the JSON body of an analysis upload.
	maxAnalysisBody = 32 << 20
	// maxImageSide bounds each uploaded image dimension, checked from the
	// header before any pixels are decoded.
	maxImageSide = 4096
)

var errTooLarge = errors.New("too large")

type handler struct {
	deps Deps
}

type metricsRequest struct {
	Landmarks pose.LandmarkSet `json:"landmarks" binding:"required"`
	Locale    string           `json:"locale"`
}

type promptRequest struct {
	Technique  string           `json:"technique" binding:"required"`
	Landmarks  pose.LandmarkSet `json:"landmarks" binding:"required"`
	FrameCount int              `json:"frame_count" binding:"min=0"`
	Locale     string           `json:"locale"`
}

type frameRequest struct {
	// T is the capture offset in milliseconds.
	T         int64            `json:"t"`
	Landmarks pose.LandmarkSet `json:"landmarks"`
	// Image is a base64 JPEG or PNG.
	Image string `json:"image"`
}

type analysisRequest struct {
	Technique string         `json:"technique" binding:"required"`
	Locale    string         `json:"locale"`
	Frames    []frameRequest `json:"frames" binding:"required,min=1,max=64"`
}

type analysisResponse struct {
	*coach.Result
	AudioURL       string `json:"audio_url,omitempty"`
	SynthesisError string `json:"synthesis_error,omitempty"`
}

// locale picks the body value, then Accept-Language, then the default.
func (h *handler) locale(c *gin.Context, explicit string) i18n.Locale {
	if explicit != "" {
		return i18n.Match(explicit)
	}
	if al := c.GetHeader("Accept-Language"); al != "" {
		return i18n.Match(al)
	}
	return h.deps.Locale
}

func (h *handler) health(c *gin.Context) {
	body := gin.H{"ok": true}
	if h.deps.Analyzer != nil {
		body["analyzer"] = h.deps.Analyzer.State().String()
	}
	respond.OK(c, body)
}

func (h *handler) techniques(c *gin.Context) {
	respond.OK(c, gin.H{"techniques": technique.All(h.locale(c, c.Query("locale")))})
}

func (h *handler) metrics(c *gin.Context) {
	var req metricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	m, err := pose.Extract(req.Landmarks)
	if err != nil {
		h.extractError(c, err)
		return
	}

	loc := h.locale(c, req.Locale)
	obs := feedback.Classify(m)
	tally := feedback.Count(obs)
	respond.OK(c, gin.H{
		"metrics":           m,
		"observations":      obs,
		"observation_texts": feedback.Texts(obs, loc),
		"tally":             tally,
		"verdict":           tally.Verdict(),
	})
}

func (h *handler) prompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	m, err := pose.Extract(req.Landmarks)
	if err != nil {
		h.extractError(c, err)
		return
	}

	p, err := prompt.Build(prompt.Input{
		TechniqueID: req.Technique,
		Metrics:     m,
		FrameCount:  req.FrameCount,
		Locale:      h.locale(c, req.Locale),
	})
	if err != nil {
		h.analysisError(c, err)
		return
	}
	respond.OK(c, gin.H{
		"prompt":       p.Text,
		"technique":    p.Technique,
		"observations": p.Observations,
		"verdict":      p.Verdict,
	})
}

func (h *handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAnalysisBody)

	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large",
				"request body exceeds "+strconv.FormatInt(mbe.Limit, 10)+" bytes", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	if h.deps.Analyzer == nil {
		respond.Error(c, http.StatusServiceUnavailable, "unavailable", "analysis is not enabled", nil)
		return
	}

	frames, skipped, err := h.decodeFrames(req.Frames)
	if errors.Is(err, errTooLarge) {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error(), nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	if len(skipped) > 0 {
		h.deps.Logger.Warn("frames skipped", "count", len(skipped), "indices", skipped)
	}

	res, err := h.deps.Analyzer.Analyze(c.Request.Context(), coach.Request{
		Technique: req.Technique,
		Locale:    h.locale(c, req.Locale),
		Capturer:  capture.Fixed(frames),
	})
	if err != nil {
		h.analysisError(c, err)
		return
	}

	out := analysisResponse{Result: res}
	if res.AudioPath != "" {
		out.AudioURL = "/api/v1/analyses/" + res.SessionID + "/audio"
	}
	if res.SynthesisErr != nil {
		out.SynthesisError = res.SynthesisErr.Error()
	}
	respond.JSON(c, http.StatusCreated, out)
}

// decodeFrames computes metrics for every uploaded frame. Frames without
// the required landmarks are skipped and their indices returned. Offsets
// must not decrease so the last frame is the latest one.
func (h *handler) decodeFrames(in []frameRequest) ([]capture.Frame, []int, error) {
	var (
		frames  []capture.Frame
		skipped []int
	)
	base := time.Now()
	for i, f := range in {
		if f.T < 0 {
			return nil, nil, fmt.Errorf("frame %d: offset %d is negative", i, f.T)
		}
		if i > 0 && f.T < in[i-1].T {
			return nil, nil, fmt.Errorf("frame %d: offset %d is before the previous frame (%d)", i, f.T, in[i-1].T)
		}
		m, err := pose.Extract(f.Landmarks)
		if err != nil {
			skipped = append(skipped, i)
			continue
		}
		frame := capture.Frame{
			At:        base.Add(time.Duration(f.T) * time.Millisecond),
			Landmarks: f.Landmarks,
			Metrics:   m,
		}
		if f.Image != "" {
			img, err := h.decodeImage(f.Image)
			if err != nil {
				return nil, nil, fmt.Errorf("frame %d: %w", i, err)
			}
			frame.Image = img
		}
		frames = append(frames, frame)
	}
	return frames, skipped, nil
}

func (h *handler) decodeImage(b64 string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, errors.New("image is not valid base64")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.New("image is not a jpeg or png")
	}
	if cfg.Width > maxImageSide || cfg.Height > maxImageSide {
		return nil, fmt.Errorf("image %dx%d exceeds %dx%d: %w", cfg.Width, cfg.Height, maxImageSide, maxImageSide, errTooLarge)
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.New("image is not a jpeg or png")
	}
	if format == "jpeg" && h.deps.ImageQuality == 0 {
		return raw, nil
	}
	q := h.deps.ImageQuality
	if q == 0 {
		q = capture.DefaultConfig().ImageQuality
	}
	return capture.EncodeJPEG(img, q)
}

func (h *handler) listAnalyses(c *gin.Context) {
	if h.deps.Analyses == nil {
		respond.Error(c, http.StatusServiceUnavailable, "unavailable", "history is not enabled", nil)
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be between 1 and 200", nil)
			return
		}
		limit = n
	}

	recs, err := h.deps.Analyses.QueryAnalyses(c.Request.Context(), store.AnalysisQuery{
		QueryOpts: store.QueryOpts{Limit: limit},
		Technique: c.Query("technique"),
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}
	if recs == nil {
		recs = []store.AnalysisRecord{}
	}
	respond.OK(c, gin.H{"analyses": recs})
}

func (h *handler) record(c *gin.Context) (*store.AnalysisRecord, bool) {
	if h.deps.Analyses == nil {
		respond.Error(c, http.StatusServiceUnavailable, "unavailable", "history is not enabled", nil)
		return nil, false
	}
	rec, err := h.deps.Analyses.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load analysis", nil)
		return nil, false
	}
	if rec == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		return nil, false
	}
	return rec, true
}

func (h *handler) getAnalysis(c *gin.Context) {
	if rec, ok := h.record(c); ok {
		respond.OK(c, rec)
	}
}

func (h *handler) getAudio(c *gin.Context) {
	rec, ok := h.record(c)
	if !ok {
		return
	}
	if rec.AudioPath == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "analysis has no audio", nil)
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	c.File(rec.AudioPath)
}

func (h *handler) extractError(c *gin.Context, err error) {
	var missing *pose.MissingLandmarksError
	if errors.As(err, &missing) {
		respond.Error(c, http.StatusUnprocessableEntity, "missing_landmarks", err.Error(), gin.H{"indices": missing.Indices})
		return
	}
	respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
}

func (h *handler) analysisError(c *gin.Context, err error) {
	var unknown *technique.UnknownTechniqueError
	switch {
	case errors.Is(err, coach.ErrInFlight):
		respond.Error(c, http.StatusConflict, "in_flight", "an analysis is already in progress", nil)
	case errors.As(err, &unknown):
		respond.Error(c, http.StatusUnprocessableEntity, "unknown_technique", err.Error(), gin.H{"technique": unknown.ID, "known": technique.IDs()})
	case errors.Is(err, coach.ErrNoPose):
		respond.Error(c, http.StatusUnprocessableEntity, "no_pose", "no frame contained a complete pose", nil)
	case errors.Is(err, coach.ErrGenerationFailed):
		respond.Error(c, http.StatusBadGateway, "generation_failed", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
	}
}
