package breeds

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"raphavets/internal/platform/logger"
)

// Predictor es lo que el proxy necesita del microservicio de ML.
type Predictor interface {
	PredictBreed(ctx context.Context, filename string, file io.Reader) ([]byte, error)
}

const maxUploadBytes = 10 << 20 // 10MB

func RegisterRoutes(r chi.Router, predictor Predictor, log logger.Logger) {
	r.Post("/predict/breed", predictBreedHandler(predictor, log))
}

// predictBreedHandler godoc
// @Summary Detectar raza desde una foto
// @Description Proxy fino al microservicio de ML: reenvía el campo multipart `file` y devuelve el JSON del modelo tal cual. Cualquier falla responde 500 {"error": "Prediction failed"}.
// @Tags breeds
// @Accept mpfd
// @Produce json
// @Param file formData file true "Imagen de la mascota"
// @Success 200 {object} map[string]any
// @Failure 400 {string} string "missing file field"
// @Failure 500 {string} string "Prediction failed"
// @Router /predict/breed [post]
func predictBreedHandler(predictor Predictor, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		raw, err := predictor.PredictBreed(r.Context(), header.Filename, file)
		if err != nil {
			// El contrato del proxy es opaco a propósito: siempre el mismo 500.
			log.Error("breed prediction failed", logger.Err(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Prediction failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}
