package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/folio-works/portfolio-backend/internal/projects/domain"
)

// File is the YAML layout of a seed file.
type File struct {
	Projects []Entry `yaml:"projects"`
}

type Entry struct {
	Title    string `yaml:"title"`
	Summary  string `yaml:"summary"`
	URL      string `yaml:"url"`
	ImageURL string `yaml:"imageUrl"`
	Featured bool   `yaml:"featured"`
}

func (e Entry) input() domain.ProjectInput {
	featured := e.Featured
	return domain.ProjectInput{
		Title:    e.Title,
		Summary:  e.Summary,
		URL:      e.URL,
		ImageURL: e.ImageURL,
		Featured: &featured,
	}
}

// Adder is the part of the project service the seeder needs.
type Adder interface {
	Add(ctx context.Context, in domain.ProjectInput) (string, error)
}

type Failure struct {
	Title string
	Err   error
}

type Result struct {
	Added  []string
	Failed []Failure
}

func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	return &file, nil
}

// Apply adds every entry through svc, so validation and the featured cap hold.
// A failing entry is recorded and the rest are still attempted.
func Apply(ctx context.Context, svc Adder, file *File) Result {
	var res Result
	for _, e := range file.Projects {
		id, err := svc.Add(ctx, e.input())
		if err != nil {
			res.Failed = append(res.Failed, Failure{Title: e.Title, Err: err})
			continue
		}
		res.Added = append(res.Added, id)
	}
	return res
}
