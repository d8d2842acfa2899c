package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/grdimg/grd2png/internal/normalize"
	"github.com/grdimg/grd2png/internal/pipeline"
	"github.com/grdimg/grd2png/internal/reader"
	"github.com/grdimg/grd2png/internal/resample"
	"github.com/grdimg/grd2png/pkg/raster"
)

// maxUploadBytes caps in-memory multipart parsing; larger uploads spill to
// disk via the multipart reader itself.
const maxUploadBytes = 64 << 20

// Server exposes the conversion pipeline over HTTP.
type Server struct {
	startTime time.Time
	version   string
	driver    string
	log       *logrus.Logger
}

// New creates a server converting uploads with the given raster driver.
func New(version, driver string, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		startTime: time.Now(),
		version:   version,
		driver:    driver,
		log:       log,
	}
}

// Register mounts the API endpoints on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.getHealth)
	r.Post("/convert", s.convert)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    int       `json:"uptime"`
	Version   string    `json:"version"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    int(time.Since(s.startTime).Seconds()),
		Version:   s.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Errorf("encoding health response: %v", err)
	}
}

// convert handles one multipart raster upload and responds with the PNG.
func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_MULTIPART", err.Error())
		return
	}

	upload, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "MISSING_FILE", `multipart field "file" is required`)
		return
	}
	defer upload.Close()

	opts, err := parseOptions(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	inPath, err := spoolUpload(upload, header.Filename)
	if err != nil {
		s.log.Errorf("spooling upload: %v", err)
		s.writeError(w, http.StatusInternalServerError, "INTERNAL", "could not store upload")
		return
	}
	defer os.Remove(inPath)

	outPath := inPath + ".png"
	defer os.Remove(outPath)

	opener, err := reader.ForDriver(s.driver)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}

	if err := pipeline.New(opener, s.log).Run(inPath, outPath, opts); err != nil {
		s.writePipelineError(w, err)
		return
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		s.log.Errorf("reading converted output: %v", err)
		s.writeError(w, http.StatusInternalServerError, "INTERNAL", "could not read converted output")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.Errorf("writing response: %v", err)
	}
}

// parseOptions reads the conversion parameters from form and query values.
func parseOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options

	scheme, err := raster.ParseScheme(r.FormValue("format"))
	if err != nil {
		return opts, err
	}
	opts.Scheme = scheme

	maxW, err := strconv.Atoi(r.FormValue("max_width"))
	if err != nil {
		return opts, errors.Errorf("invalid max_width %q", r.FormValue("max_width"))
	}
	maxH, err := strconv.Atoi(r.FormValue("max_height"))
	if err != nil {
		return opts, errors.Errorf("invalid max_height %q", r.FormValue("max_height"))
	}
	opts.Bound = raster.BoundingSize{MaxWidth: maxW, MaxHeight: maxH}

	if v := r.FormValue("band"); v != "" {
		band, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.Errorf("invalid band %q", v)
		}
		opts.Band = band
	}
	if v := r.FormValue("calibrate"); v != "" {
		calibrate, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Errorf("invalid calibrate %q", v)
		}
		opts.Calibrate = calibrate
	}
	return opts, nil
}

// spoolUpload copies the upload to a temp file so path-based decoders can
// open it. The caller removes the file.
func spoolUpload(upload io.Reader, name string) (string, error) {
	f, err := os.CreateTemp("", "grd2png-*"+filepath.Ext(name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, upload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// writePipelineError maps pipeline failures onto HTTP statuses.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, raster.ErrInvalidScheme):
		s.writeError(w, http.StatusBadRequest, "INVALID_FORMAT", err.Error())
	case errors.Is(err, resample.ErrInvalidBounds):
		s.writeError(w, http.StatusBadRequest, "INVALID_SIZE", err.Error())
	case errors.Is(err, normalize.ErrEmptyData):
		s.writeError(w, http.StatusUnprocessableEntity, "EMPTY_DATA", err.Error())
	case errors.Is(err, reader.ErrNoBands), errors.Is(err, reader.ErrBandRange):
		s.writeError(w, http.StatusUnprocessableEntity, "BAD_BAND", err.Error())
	default:
		s.log.Errorf("conversion failed: %v", err)
		s.writeError(w, http.StatusUnprocessableEntity, "CONVERSION_FAILED", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Code: code, Message: message}); err != nil {
		s.log.Errorf("encoding error response: %v", err)
	}
}
