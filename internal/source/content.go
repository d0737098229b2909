package source

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/Bitlatte/areyou/internal/imageset"
	"github.com/Bitlatte/areyou/internal/model"
	"github.com/Bitlatte/areyou/internal/page"
)

const (
	historyDir = "history"
	peopleFile = "people.yaml"
)

// photoNamespace seeds the ids of photos that do not declare one.
var photoNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("areyou/photos"))

// ContentSource reads records from markdown files with YAML front matter
// under <ContentDir>/history and people from <DataDir>/people.yaml.
type ContentSource struct {
	ContentDir string
	DataDir    string
	Images     imageset.Builder
	Markdown   goldmark.Markdown
	Logger     *slog.Logger
}

type recordMatter struct {
	Year   *int          `yaml:"year"`
	Title  string        `yaml:"title"`
	Link   string        `yaml:"link"`
	Photos []photoMatter `yaml:"photos"`
}

type photoMatter struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	File        string `yaml:"file"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
}

type personEntry struct {
	FirstName string `yaml:"firstName"`
	FullName  string `yaml:"fullName"`
	Email     string `yaml:"email"`
	Link      string `yaml:"link"`
	Order     int    `yaml:"order"`
}

func (s *ContentSource) Load(ctx context.Context) (*page.Snapshot, error) {
	if s.Markdown == nil {
		s.Markdown = NewMarkdown()
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	people, err := s.loadPeople()
	if err != nil {
		return nil, err
	}
	snapshot := &page.Snapshot{Records: records, People: people}
	Sort(snapshot)
	s.Logger.Info("content loaded",
		"records", len(records),
		"photos", countPhotos(records),
		"people", len(people),
	)
	return snapshot, nil
}

func (s *ContentSource) loadRecords(ctx context.Context) ([]*model.HistoryRecord, error) {
	dir := filepath.Join(s.ContentDir, historyDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("history directory '%s' not found: %w", dir, err)
	}

	var records []*model.HistoryRecord
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s': %w", path, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		record, err := s.readRecord(path)
		if err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *ContentSource) readRecord(path string) (*model.HistoryRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	var fm recordMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter of '%s': %w", path, err)
	}
	if fm.Year == nil {
		return nil, fmt.Errorf("'%s': %w", path, ErrNoYear)
	}
	content, err := renderMarkdown(s.Markdown, body)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}

	record := &model.HistoryRecord{
		Year:    *fm.Year,
		Title:   fm.Title,
		Link:    fm.Link,
		Content: content,
	}
	if record.Title == "" {
		record.Title = titleFromFile(path)
	}
	for i, p := range fm.Photos {
		record.Photos = append(record.Photos, s.photo(record, i, p))
	}
	if record.IsLink() && len(record.Photos) > 0 {
		s.Logger.Debug("link record photos stay out of the gallery", "path", path, "photos", len(record.Photos))
	}
	return record, nil
}

func (s *ContentSource) photo(record *model.HistoryRecord, i int, p photoMatter) *model.Photo {
	id := p.ID
	if id == "" {
		id = uuid.NewSHA1(photoNamespace, []byte(record.Key()+"/"+strconv.Itoa(i))).String()
	}
	return &model.Photo{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Thumbnail:   s.Images.Fluid(p.File, imageset.ThumbnailWidth, p.Width, p.Height),
		FullSize:    s.Images.Fluid(p.File, imageset.FullSizeWidth, p.Width, p.Height),
	}
}

func (s *ContentSource) loadPeople() ([]*model.Person, error) {
	path := filepath.Join(s.DataDir, peopleFile)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.Logger.Warn("no people file, contact list is empty", "path", path)
		return []*model.Person{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read people file '%s': %w", path, err)
	}
	var entries []personEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("error unmarshalling people file %s: %w", path, err)
	}
	people := make([]*model.Person, 0, len(entries))
	for _, e := range entries {
		people = append(people, &model.Person{
			FirstName: e.FirstName,
			FullName:  e.FullName,
			Email:     e.Email,
			Link:      e.Link,
			Order:     e.Order,
		})
	}
	return people, nil
}

func titleFromFile(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(base)
}
