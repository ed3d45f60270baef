package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/astromapa/natal-chart-service/internal/domain"
)

// mapaRequest is the /api/mapa body. Date format is YYYY-MM-DD, time HH:MM.
type mapaRequest struct {
	Nome   string `json:"nome"`
	Data   string `json:"data"`
	Hora   string `json:"hora"`
	Cidade string `json:"cidade"`
	Pais   string `json:"pais"`
}

type mapaResponse struct {
	Planetas     []string `json:"planetas"`
	Signos       []string `json:"signos"`
	TotalAcessos int64    `json:"total_acessos,omitempty"`
}

type erroResponse struct {
	Erro string `json:"erro"`
}

func (s *Server) handleMapa(w http.ResponseWriter, r *http.Request) {
	var req mapaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	query, err := req.toBirthQuery()
	if err != nil {
		s.metrics.ChartsFailed.WithLabelValues("validation").Inc()
		writeErro(w, http.StatusBadRequest, userMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	result, err := s.charts.Assemble(ctx, query)
	if err != nil {
		s.respondChartError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapaResponse{
		Planetas:     result.Planets,
		Signos:       result.Signs,
		TotalAcessos: result.Total,
	})
}

// toBirthQuery validates field presence and formats.
func (r mapaRequest) toBirthQuery() (domain.BirthQuery, error) {
	var missing []string
	if r.Data == "" {
		missing = append(missing, "data")
	}
	if r.Hora == "" {
		missing = append(missing, "hora")
	}
	if r.Cidade == "" {
		missing = append(missing, "cidade")
	}
	if len(missing) > 0 {
		return domain.BirthQuery{}, fmt.Errorf("%w: campos obrigatórios ausentes: %s",
			domain.ErrValidation, strings.Join(missing, ", "))
	}

	date, err := time.Parse("2006-01-02", r.Data)
	if err != nil {
		return domain.BirthQuery{}, fmt.Errorf("%w: data %q não está no formato AAAA-MM-DD",
			domain.ErrValidation, r.Data)
	}
	clock, err := time.Parse("15:04", r.Hora)
	if err != nil {
		return domain.BirthQuery{}, fmt.Errorf("%w: hora %q não está no formato HH:MM",
			domain.ErrValidation, r.Hora)
	}

	return domain.BirthQuery{
		Name:    r.Nome,
		Year:    date.Year(),
		Month:   date.Month(),
		Day:     date.Day(),
		Hour:    clock.Hour(),
		Minute:  clock.Minute(),
		Place:   r.Cidade,
		Country: r.Pais,
	}, nil
}

// respondChartError maps pipeline failures onto the error contract: domain
// errors become 400 with a user-facing message, anything else becomes a
// generic 500 without internal detail.
func (s *Server) respondChartError(w http.ResponseWriter, r *http.Request, err error) {
	reason, ok := failureReason(err)
	if !ok {
		s.metrics.ChartsFailed.WithLabelValues("internal").Inc()
		s.logger.Error("chart assembly failed",
			"error", err,
			"request_id", requestIDFrom(r.Context()),
		)
		writeErro(w, http.StatusInternalServerError, "erro interno ao calcular o mapa")
		return
	}

	s.metrics.ChartsFailed.WithLabelValues(reason).Inc()
	writeErro(w, http.StatusBadRequest, userMessage(err))
}

// failureReason classifies a domain error for metrics labels.
func failureReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation", true
	case errors.Is(err, domain.ErrLocationNotFound):
		return "location", true
	case errors.Is(err, domain.ErrTimezoneNotFound):
		return "timezone", true
	case errors.Is(err, domain.ErrInvalidTimezone):
		return "timezone", true
	case errors.Is(err, domain.ErrInvalidDateTime):
		return "datetime", true
	case errors.Is(err, domain.ErrEphemeris):
		return "ephemeris", true
	}
	return "", false
}

// userMessage translates a domain error into the Portuguese message exposed
// in the "erro" field.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		// Validation messages are already user-facing; strip the sentinel prefix.
		msg := err.Error()
		if idx := strings.Index(msg, ": "); idx >= 0 {
			return msg[idx+2:]
		}
		return msg
	case errors.Is(err, domain.ErrLocationNotFound):
		return "localização não encontrada"
	case errors.Is(err, domain.ErrTimezoneNotFound):
		return "fuso horário não encontrado para a localização"
	case errors.Is(err, domain.ErrInvalidTimezone):
		return "fuso horário desconhecido"
	case errors.Is(err, domain.ErrInvalidDateTime):
		return "data ou hora inválida para o local informado"
	case errors.Is(err, domain.ErrEphemeris):
		return "falha ao calcular as posições planetárias"
	}
	return "erro interno"
}

// pdfRequest is the /api/pdf body; resultados is usually the planetas array
// from a previous /api/mapa call.
type pdfRequest struct {
	Nome       string   `json:"nome"`
	Resultados []string `json:"resultados"`
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	var req pdfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if len(req.Resultados) == 0 {
		writeErro(w, http.StatusBadRequest, "campo obrigatório ausente: resultados")
		return
	}

	data, err := s.renderer.Render(req.Nome, req.Resultados)
	if err != nil {
		s.logger.Error("pdf render failed", "error", err, "request_id", requestIDFrom(r.Context()))
		writeErro(w, http.StatusInternalServerError, "erro interno ao gerar o PDF")
		return
	}
	s.metrics.PDFsRendered.Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="MapaAstral_%s.pdf"`, sanitizeFilename(req.Nome)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// sanitizeFilename keeps the attachment name header-safe: path separators,
// quotes, and control characters are replaced, spaces become underscores.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "mapa"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '/' || r == '\\' || r == '"' || r < 0x20:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *Server) handleContador(w http.ResponseWriter, r *http.Request) {
	var total int64
	if s.counter != nil {
		var err error
		total, err = s.counter.Read(r.Context())
		if err != nil {
			s.logger.Error("counter read failed", "error", err)
			writeErro(w, http.StatusInternalServerError, "erro interno ao ler o contador")
			return
		}
		s.metrics.AccessTotal.Set(float64(total))
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}

func writeErro(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, erroResponse{Erro: msg})
}
