package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/notegrid/midi"
	"github.com/jsphweid/notegrid/model"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// uploads above this size are rejected
const maxUpload = 8 << 20

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the measure analysis over HTTP",
	Long:  `POST a MIDI file to /analyze to get its measures as JSON.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.Infof("listening on %s", cfg.Server.Addr)
		return http.ListenAndServe(cfg.Server.Addr, NewHandler())
	},
}

func NewHandler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	router.HandleFunc("/healthz", handleHealth).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("could not write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// statusFor maps domain errors to client errors and everything else to 500.
func statusFor(err error) int {
	for _, target := range []error{model.ErrQuantization, model.ErrPolyphony, model.ErrValue, model.ErrContent} {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleAnalyze reads a MIDI file from the request body and answers with its
// measures. The quantize query parameter overrides the configured setting.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpload+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(body) > maxUpload {
		writeError(w, http.StatusRequestEntityTooLarge, errors.New("midi file too large"))
		return
	}

	song, err := midi.ReadSongFrom(bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c := *cfg
	if q := r.URL.Query().Get("quantize"); q != "" {
		c.Quantize = q
	}
	c.RemovePolyphony = true
	if err := prepare(song, &c); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	_, res, err := analyze(song)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
