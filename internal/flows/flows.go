package flows

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrDisabled is returned when no generative backend is configured.
	ErrDisabled = errors.New("generative AI is not configured")
	ErrInvalid  = errors.New("Invalid data provided.")
	ErrEmpty    = errors.New("model returned no content")
)

// Generator is the opaque model boundary.
type Generator interface {
	Text(ctx context.Context, prompt string) (string, error)
	// Image returns the encoded image and its MIME type.
	Image(ctx context.Context, prompt string) ([]byte, string, error)
	// Speech returns raw 16-bit little-endian PCM.
	Speech(ctx context.Context, text string) ([]byte, error)
}

type SummaryInput struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required"`
	Notes string `json:"notes"`
}

// Service builds prompts and packages model output for the admin editor.
type Service struct {
	gen Generator
	log *zap.Logger
}

// NewService returns a Service. A nil gen yields ErrDisabled from every flow.
func NewService(gen Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gen: gen, log: log}
}

func (s *Service) Enabled() bool { return s.gen != nil }

func (s *Service) Summary(ctx context.Context, in SummaryInput) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	title := strings.TrimSpace(in.Title)
	url := strings.TrimSpace(in.URL)
	if title == "" || url == "" {
		return "", ErrInvalid
	}

	out, err := s.gen.Text(ctx, summaryPrompt(title, url, strings.TrimSpace(in.Notes)))
	if err != nil {
		s.log.Error("summary flow failed", zap.String("title", title), zap.Error(err))
		return "", fmt.Errorf("summary flow: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmpty
	}
	return out, nil
}

func summaryPrompt(title, url, notes string) string {
	var b strings.Builder
	b.WriteString("Write a concise, engaging portfolio summary (two or three sentences, plain text, no markdown) for this project.\n")
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "URL: %s\n", url)
	if notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	return b.String()
}

// Image returns a data URI for a generated image.
func (s *Service) Image(ctx context.Context, prompt string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrInvalid
	}

	data, mime, err := s.gen.Image(ctx, prompt)
	if err != nil {
		s.log.Error("image flow failed", zap.Error(err))
		return "", fmt.Errorf("image flow: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if mime == "" {
		mime = "image/png"
	}
	return dataURI(mime, data), nil
}

// Speech returns a data URI of a WAV file with the synthesized text.
func (s *Service) Speech(ctx context.Context, text string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrInvalid
	}

	pcm, err := s.gen.Speech(ctx, text)
	if err != nil {
		s.log.Error("speech flow failed", zap.Int("chars", len(text)), zap.Error(err))
		return "", fmt.Errorf("speech flow: %w", err)
	}
	if len(pcm) == 0 {
		return "", ErrEmpty
	}
	return dataURI("audio/wav", EncodeWAV(pcm, DefaultPCMFormat)), nil
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
