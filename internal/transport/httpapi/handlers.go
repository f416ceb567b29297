package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"threshold.network/randbeacon/internal/beaconerr"
	"threshold.network/randbeacon/internal/coordinator"
)

// Logger is the minimal structured-logging surface the transport layer
// needs for request-level logging, distinct from coordinator.Logger
// only so this package never has to import the coordinator's internal
// wiring types.
type Logger interface {
	Errorw(msg string, keysAndValues ...interface{})
}

// Server adapts a coordinator.Coordinator to chi-routed JSON/HTTP,
// following the same router-plus-plain-handlers shape this corpus's
// other HTTP-fronted services use.
type Server struct {
	coord *coordinator.Coordinator
	log   Logger
}

// NewServer builds a chi.Router serving the four beacon operations
// over coord.
func NewServer(coord *coordinator.Coordinator, log Logger) http.Handler {
	s := &Server{coord: coord, log: log}
	if s.log == nil {
		s.log = noopLogger{}
	}

	r := chi.NewRouter()
	r.Post("/commit-random", s.handleCommitRandom)
	r.Post("/co-commit-random", s.handleCoCommitRandom)
	r.Post("/reveal-random", s.handleRevealRandom)
	r.Get("/nodes", s.handleNodes)
	r.Get("/node", s.handleNode)
	return r
}

func (s *Server) handleCommitRandom(w http.ResponseWriter, r *http.Request) {
	result, err := s.coord.CommitRandom(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commitRandomResponse{
		CommitmentID:        encodeID(result.CommitmentID),
		Nodes:               result.Nodes,
		AggregateCommitment: encodePoint(result.AggregateCommitment),
	})
}

func (s *Server) handleCoCommitRandom(w http.ResponseWriter, r *http.Request) {
	var req coCommitRandomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed_point", Message: "invalid request body"})
		return
	}

	id, err := decodeID(req.CommitmentID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed_point", Message: err.Error()})
		return
	}
	dealerCommitment, err := decodePoint(req.Commitment)
	if err != nil {
		s.writeError(w, err)
		return
	}

	response, err := s.coord.CoCommitRandom(r.Context(), id, dealerCommitment)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coCommitRandomResponse{Commitment: encodePoint(response)})
}

func (s *Server) handleRevealRandom(w http.ResponseWriter, r *http.Request) {
	var req revealRandomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed_point", Message: "invalid request body"})
		return
	}

	id, err := decodeID(req.CommitmentID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed_point", Message: err.Error()})
		return
	}

	result, err := s.coord.RevealRandom(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revealRandomResponse{
		Opening:    encodeOpening(result.Opening),
		Commitment: encodePoint(result.AggregateCommitment),
	})
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	dir := s.coord.Directory()
	writeJSON(w, http.StatusOK, nodesResponse{
		Self:      dir.SelfURL(),
		Peers:     dir.Others(),
		Threshold: dir.Threshold(),
	})
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nodeResponse{URL: s.coord.Directory().SelfURL()})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := beaconerr.KindOf(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		s.log.Errorw("internal error serving request", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: kind.String(), Message: err.Error()})
}

func statusForKind(kind beaconerr.Kind) int {
	switch kind {
	case beaconerr.MalformedPoint, beaconerr.MalformedScalar:
		return http.StatusBadRequest
	case beaconerr.NotFound:
		return http.StatusNotFound
	case beaconerr.Conflict:
		return http.StatusConflict
	case beaconerr.PeerUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type noopLogger struct{}

func (noopLogger) Errorw(string, ...interface{}) {}
