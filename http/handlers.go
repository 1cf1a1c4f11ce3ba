package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"heartrisk/ml"
)

// Predictor runs one inference over a fixed-order feature vector.
type Predictor interface {
	Predict(features []float64) (ml.Prediction, error)
}

// Handler serves the form and runs a prediction on each submission.
type Handler struct {
	predictor Predictor
	logger    *zap.Logger
}

func NewHandler(predictor Predictor, logger *zap.Logger) (*Handler, error) {
	if predictor == nil {
		return nil, errors.New("handler needs a predictor")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{predictor: predictor, logger: logger}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /{$}", h.handlePredict)
	mux.HandleFunc("GET /api/health", handleHealth)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, newPageView(nil))
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	input, err := parsePatientForm(r.PostForm)
	if err != nil {
		view := newPageView(r.PostForm)
		view.Error = err.Error()
		h.render(w, r, http.StatusBadRequest, view)
		return
	}

	prediction, err := h.predictor.Predict(input.Vector())
	if err != nil {
		h.logger.Error("prediction failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "prediction failed", http.StatusInternalServerError)
		return
	}
	h.logger.Debug("prediction",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Int("label", prediction.Label),
		zap.Float64("confidence", prediction.Confidence()),
	)

	view := newPageView(r.PostForm)
	view.Result = newResultView(prediction)
	h.render(w, r, http.StatusOK, view)
}

// render executes into a buffer first so a template error never leaves a
// half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, view pageView) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, view); err != nil {
		h.logger.Error("render page",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
