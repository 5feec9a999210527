package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
	"github.com/daybook/daybook/internal/richtext"
	"github.com/daybook/daybook/internal/services"
	"github.com/daybook/daybook/internal/session"
	"github.com/daybook/daybook/internal/usecase"
)

// ErrLocked is returned by data tools while a registered journal has not been
// unlocked with journal_unlock.
var ErrLocked = errors.New("journal is locked: call journal_unlock with the PIN first")

// Server wraps the MCP server with journal tools
type Server struct {
	server  *mcp.Server
	dbCtx   *database.Context
	journal *usecase.Journal
	users   *services.UserService
	moods   *services.MoodService
	tags    *services.TagService
	now     func() time.Time
}

// NewServer opens the database at dbPath (the configured default when empty)
// and registers the journal tools.
func NewServer(dbPath, version string) (*Server, error) {
	dbCtx, err := database.CreateDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	return newServer(dbCtx, version), nil
}

func newServer(dbCtx *database.Context, version string) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "daybook",
		Version: version,
	}, nil)

	s := &Server{
		server:  mcpServer,
		dbCtx:   dbCtx,
		journal: usecase.NewJournal(dbCtx),
		users:   services.NewUserService(dbCtx, session.New()),
		moods:   services.NewMoodService(dbCtx),
		tags:    services.NewTagService(dbCtx),
		now:     time.Now,
	}

	s.registerTools()

	return s
}

// Run starts the MCP server with stdio transport
func (s *Server) Run(ctx context.Context) error {
	defer database.CloseDatabase(s.dbCtx)
	slog.InfoContext(ctx, "mcp server starting", "session", s.users.Session().ID())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_unlock",
		Description: "Unlock the journal with the owner's 4-digit PIN",
	}, s.handleUnlock)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_lock",
		Description: "Lock the journal again",
	}, s.handleLock)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_write",
		Description: "Write the entry for a day, replacing any existing entry for that day",
	}, s.handleWrite)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_get",
		Description: "Get the entry for a day or by id",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_list",
		Description: "List entries newest first, optionally within a day range",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_search",
		Description: "Search entry titles, content, moods and tags",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_delete",
		Description: "Delete the entry for a day",
	}, s.handleDelete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "mood_list",
		Description: "List available moods, optionally for one category",
	}, s.handleMoodList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tag_list",
		Description: "List available tags",
	}, s.handleTagList)
}

// Input/Output types for each tool

type UnlockInput struct {
	OTP string `json:"otp" jsonschema:"the 4-digit PIN"`
}

type UnlockOutput struct {
	Unlocked bool   `json:"unlocked"`
	User     string `json:"user,omitempty"`
}

type LockInput struct{}

type MessageOutput struct {
	Message string `json:"message"`
}

type WriteInput struct {
	Date           string   `json:"date,omitempty" jsonschema:"day as YYYY-MM-DD, today or yesterday; defaults to now"`
	Title          string   `json:"title,omitempty" jsonschema:"entry title"`
	Content        string   `json:"content,omitempty" jsonschema:"entry body"`
	Markdown       bool     `json:"markdown,omitempty" jsonschema:"render content from Markdown to HTML"`
	PrimaryMood    string   `json:"primaryMood,omitempty" jsonschema:"primary mood name"`
	SecondaryMoods []string `json:"secondaryMoods,omitempty" jsonschema:"secondary mood names"`
	Tags           []string `json:"tags,omitempty" jsonschema:"tag names; missing tags are created"`
}

type EntryOutput struct {
	ID             int64    `json:"id"`
	Date           string   `json:"date"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	PrimaryMood    string   `json:"primaryMood,omitempty"`
	SecondaryMoods []string `json:"secondaryMoods,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

type GetInput struct {
	Date string `json:"date,omitempty" jsonschema:"day as YYYY-MM-DD"`
	ID   int64  `json:"id,omitempty" jsonschema:"entry id, used when date is empty"`
}

type ListInput struct {
	From  string `json:"from,omitempty" jsonschema:"first day (inclusive) as YYYY-MM-DD"`
	To    string `json:"to,omitempty" jsonschema:"last day (inclusive) as YYYY-MM-DD"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"case-insensitive text to look for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
}

type ListOutput struct {
	Entries []ListEntry `json:"entries"`
}

type ListEntry struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	PrimaryMood string `json:"primaryMood,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
}

type DeleteInput struct {
	Date string `json:"date" jsonschema:"day as YYYY-MM-DD"`
}

type MoodListInput struct {
	Category string `json:"category,omitempty" jsonschema:"Primary or Secondary"`
}

type MoodListOutput struct {
	Moods    []MoodItem `json:"moods"`
	Fallback bool       `json:"fallback,omitempty"`
}

type MoodItem struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category"`
	MoodType string `json:"moodType"`
}

type TagListInput struct{}

type TagListOutput struct {
	Tags     []TagItem `json:"tags"`
	Fallback bool      `json:"fallback,omitempty"`
}

type TagItem struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

const excerptWidth = 80

// requireUnlocked refuses data access while a registered owner has not
// unlocked this server's session.
func (s *Server) requireUnlocked(ctx context.Context) error {
	if s.users.IsAuthenticated() {
		return nil
	}
	registered, err := s.users.Registered(ctx)
	if err != nil {
		return err
	}
	if registered {
		return ErrLocked
	}
	return nil
}

func (s *Server) parseDay(value string) (time.Time, error) {
	return journal.ParseDay(value, s.now())
}

func toEntryOutput(view *usecase.EntryView) EntryOutput {
	e := view.Entry
	return EntryOutput{
		ID:             e.ID,
		Date:           e.Day(),
		Title:          e.Title,
		Content:        e.Content,
		PrimaryMood:    e.PrimaryMood,
		SecondaryMoods: e.SecondaryMoodList(),
		Tags:           view.TagNames(),
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
}

func toListOutput(entries []journal.Entry) ListOutput {
	items := make([]ListEntry, 0, len(entries))
	for _, e := range entries {
		items = append(items, ListEntry{
			ID:          e.ID,
			Date:        e.Day(),
			Title:       e.Title,
			PrimaryMood: e.PrimaryMood,
			Tags:        e.Tags,
			Excerpt:     richtext.Excerpt(e.Content, excerptWidth),
		})
	}
	return ListOutput{Entries: items}
}

// Tool handlers

func (s *Server) handleUnlock(ctx context.Context, req *mcp.CallToolRequest, input UnlockInput) (*mcp.CallToolResult, UnlockOutput, error) {
	if !s.users.Exists(ctx) {
		return nil, UnlockOutput{}, errors.New("no journal owner registered; run `daybook user register` first")
	}
	if !s.users.ValidateOTP(ctx, input.OTP) {
		return nil, UnlockOutput{}, errors.New("invalid PIN")
	}
	out := UnlockOutput{Unlocked: true}
	if u := s.users.Session().User(); u != nil {
		out.User = u.Name
	}
	return nil, out, nil
}

func (s *Server) handleLock(ctx context.Context, req *mcp.CallToolRequest, input LockInput) (*mcp.CallToolResult, MessageOutput, error) {
	s.users.Logout()
	return nil, MessageOutput{Message: "Journal locked"}, nil
}

func (s *Server) handleWrite(ctx context.Context, req *mcp.CallToolRequest, input WriteInput) (*mcp.CallToolResult, EntryOutput, error) {
	if err := s.requireUnlocked(ctx); err != nil {
		return nil, EntryOutput{}, err
	}

	date := s.now()
	if strings.TrimSpace(input.Date) != "" {
		d, err := s.parseDay(input.Date)
		if err != nil {
			return nil, EntryOutput{}, err
		}
		date = d
	}

	view, err := s.journal.Write(ctx, usecase.WriteInput{
		Date:           date,
		Title:          input.Title,
		Content:        input.Content,
		Markdown:       input.Markdown,
		PrimaryMood:    input.PrimaryMood,
		SecondaryMoods: input.SecondaryMoods,
		Tags:           input.Tags,
	})
	if err != nil {
		return nil, EntryOutput{}, fmt.Errorf("failed to write entry: %w", err)
	}
	return nil, toEntryOutput(view), nil
}

func (s *Server) handleGet(ctx context.Context, req *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, EntryOutput, error) {
	if err := s.requireUnlocked(ctx); err != nil {
		return nil, EntryOutput{}, err
	}

	var (
		view *usecase.EntryView
		err  error
	)
	if strings.TrimSpace(input.Date) == "" && input.ID > 0 {
		view, err = s.journal.Get(ctx, input.ID)
	} else {
		day, perr := s.parseDay(input.Date)
		if perr != nil {
			return nil, EntryOutput{}, perr
		}
		view, err = s.journal.Show(ctx, day)
	}
	if err != nil {
		return nil, EntryOutput{}, err
	}
	return nil, toEntryOutput(view), nil
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	if err := s.requireUnlocked(ctx); err != nil {
		return nil, ListOutput{}, err
	}

	opts := usecase.ListInput{Limit: input.Limit}
	if strings.TrimSpace(input.From) != "" {
		from, err := s.parseDay(input.From)
		if err != nil {
			return nil, ListOutput{}, err
		}
		opts.From = from
	}
	if strings.TrimSpace(input.To) != "" {
		to, err := s.parseDay(input.To)
		if err != nil {
			return nil, ListOutput{}, err
		}
		opts.To = to
	}

	return nil, toListOutput(s.journal.List(ctx, opts)), nil
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, ListOutput, error) {
	if err := s.requireUnlocked(ctx); err != nil {
		return nil, ListOutput{}, err
	}
	return nil, toListOutput(s.journal.Search(ctx, input.Query, input.Limit)), nil
}

func (s *Server) handleDelete(ctx context.Context, req *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, MessageOutput, error) {
	if err := s.requireUnlocked(ctx); err != nil {
		return nil, MessageOutput{}, err
	}

	day, err := s.parseDay(input.Date)
	if err != nil {
		return nil, MessageOutput{}, err
	}
	entry, err := s.journal.Delete(ctx, day)
	if err != nil {
		return nil, MessageOutput{}, fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Deleted entry for %s", entry.Day())}, nil
}

func (s *Server) handleMoodList(ctx context.Context, req *mcp.CallToolRequest, input MoodListInput) (*mcp.CallToolResult, MoodListOutput, error) {
	if err := s.requireUnlocked(ctx); err != nil {
		return nil, MoodListOutput{}, err
	}

	var (
		moods    []journal.Mood
		fallback bool
	)
	if strings.TrimSpace(input.Category) != "" {
		moods = s.moods.ListByCategory(ctx, input.Category)
	} else {
		moods, fallback = s.moods.ListAll(ctx)
	}

	items := make([]MoodItem, 0, len(moods))
	for _, m := range moods {
		items = append(items, MoodItem{ID: m.ID, Name: m.Name, Category: m.Category, MoodType: m.MoodType})
	}
	return nil, MoodListOutput{Moods: items, Fallback: fallback}, nil
}

func (s *Server) handleTagList(ctx context.Context, req *mcp.CallToolRequest, input TagListInput) (*mcp.CallToolResult, TagListOutput, error) {
	if err := s.requireUnlocked(ctx); err != nil {
		return nil, TagListOutput{}, err
	}

	tags, fallback := s.tags.ListAll(ctx)
	items := make([]TagItem, 0, len(tags))
	for _, t := range tags {
		items = append(items, TagItem{ID: t.ID, Name: t.Name})
	}
	return nil, TagListOutput{Tags: items, Fallback: fallback}, nil
}
