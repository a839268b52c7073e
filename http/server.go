package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/fwojciec/urlcast"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server shuts down.
const ShutdownTimeout = 5 * time.Second

// maxRequestBody caps JSON request bodies.
const maxRequestBody = 1 << 20

// Server is the JSON and server-sent events API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *http.ServeMux

	// Addr is the listen address, e.g. ":8000".
	Addr string

	// AllowedOrigins lists origins allowed by CORS. "*" allows any origin.
	AllowedOrigins []string

	// AudioDir is served under /audio/. Empty disables the route.
	AudioDir string

	Logger *slog.Logger

	ArticleReader urlcast.ArticleReader
	Streamer      urlcast.Streamer
	Publisher     urlcast.Publisher
	FeedStore     urlcast.ObjectStore
}

// NewServer returns a server with its routes registered. Dependencies are
// assigned on the returned value before Open.
func NewServer() *Server {
	s := &Server{
		router: http.NewServeMux(),
		Logger: slog.Default(),
	}
	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.router.HandleFunc("POST /api/extract", s.handleExtract)
	s.router.HandleFunc("POST /api/scrape", s.handleScrape)
	s.router.HandleFunc("POST /api/convert", s.handleConvert)
	s.router.HandleFunc("GET /api/stream", s.handleStream)
	s.router.HandleFunc("GET /api/feed", s.handleFeed)
	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.HandleFunc("GET /audio/{file}", s.handleAudio)

	return s
}

// Open starts listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP applies CORS and request logging, then routes the request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	if s.cors(rec, r) && r.Method == http.MethodOptions {
		rec.WriteHeader(http.StatusNoContent)
	} else {
		s.router.ServeHTTP(rec, r)
	}

	s.Logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

// cors sets CORS headers for allowed origins and reports whether it did.
// Listed origins are echoed with credentials; the "*" entry admits any
// origin without them.
func (s *Server) cors(w http.ResponseWriter, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}
	h := w.Header()
	switch {
	case slices.Contains(s.AllowedOrigins, origin):
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Add("Vary", "Origin")
	case slices.Contains(s.AllowedOrigins, "*"):
		// Credentials are never allowed for the wildcard.
		h.Set("Access-Control-Allow-Origin", "*")
	default:
		return false
	}
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	return true
}

type urlRequest struct {
	URL string `json:"url"`
}

func decodeURL(w http.ResponseWriter, r *http.Request) (string, error) {
	var req urlRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		return "", urlcast.Errorf(urlcast.EINVALID, "Invalid request body: %v", err)
	}
	return req.URL, nil
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	url, err := decodeURL(w, r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	article, err := s.ArticleReader.Read(r.Context(), url)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.JSON(w, http.StatusOK, map[string]string{
		"content": article.Content,
		"title":   article.Title,
	})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	url, err := decodeURL(w, r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	preview, err := s.Publisher.Preview(r.Context(), url)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.JSON(w, http.StatusOK, map[string]string{
		"content":   preview.Article.Content,
		"audio_url": "/audio/" + preview.AudioFile,
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	url, err := decodeURL(w, r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	pub, err := s.Publisher.Publish(r.Context(), url)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.JSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"content":   pub.Article.Content,
		"audio_url": pub.Episode.AudioURL,
		"feed_url":  pub.FeedURL,
	})
}

// handleStream extracts the page first so that extraction failures are
// reported as regular JSON errors, then streams word events.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	article, err := s.ArticleReader.Read(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if err := WriteEvents(w, s.Streamer.Stream(r.Context(), article.Content)); err != nil {
		s.Logger.Debug("stream ended", "err", err)
	}
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	data, err := s.FeedStore.Get(r.Context(), urlcast.FeedKey)
	if urlcast.ErrorCode(err) == urlcast.ENOTFOUND {
		s.Error(w, r, urlcast.Errorf(urlcast.ENOTFOUND, "Feed not found"))
		return
	} else if err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	if s.AudioDir == "" {
		s.Error(w, r, urlcast.Errorf(urlcast.ENOTFOUND, "Audio not found"))
		return
	}
	http.ServeFileFS(w, r, os.DirFS(s.AudioDir), r.PathValue("file"))
}

// JSON writes v as a JSON response with the given status.
func (s *Server) JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "err", err)
	}
}

// Error writes err as a {"detail": message} response. Internal errors are
// logged since their message is hidden from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := urlcast.ErrorCode(err), urlcast.ErrorMessage(err)
	if code == urlcast.EINTERNAL {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.JSON(w, ErrorStatusCode(code), map[string]string{"detail": message})
}

// codes maps urlcast error codes to HTTP status codes.
var codes = map[string]int{
	urlcast.EINVALID:   http.StatusBadRequest,
	urlcast.ENOCONTENT: http.StatusBadRequest,
	urlcast.EFETCH:     http.StatusBadRequest,
	urlcast.ENOTFOUND:  http.StatusNotFound,
	urlcast.EINTERNAL:  http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
