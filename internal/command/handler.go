// Package command runs the text analysis command against a host dataset.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"harshagw/textanalysis/internal/analysis"
	"harshagw/textanalysis/internal/config"
	"harshagw/textanalysis/internal/host"
	"harshagw/textanalysis/internal/lexicon"
	"harshagw/textanalysis/internal/sentiment"
)

// Env is what the host provides to one invocation.
type Env struct {
	Data   host.Dataset
	Output host.TableSink
	// Creator receives exported datasets. Optional unless the lexicon is
	// exported.
	Creator host.Creator
	// Lexicon provides synonyms for search terms. Nil disables expansion.
	Lexicon lexicon.Lexicon
	// Words provides spelling dictionaries.
	Words lexicon.WordSource
}

// Report summarizes an invocation.
type Report struct {
	// Variables lists the created or modified variables in order.
	Variables []string
}

// Handler executes requests. The sentiment lexicon, including scores
// added by earlier requests, is kept for the life of the Handler.
type Handler struct {
	sentiment *sentiment.Analyzer
	logger    *slog.Logger
}

type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSentimentLexicon replaces the built-in sentiment lexicon.
func WithSentimentLexicon(lex *sentiment.Lexicon) Option {
	return func(h *Handler) {
		h.sentiment = sentiment.NewAnalyzer(lex)
	}
}

// NewHandler returns a handler.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	if h.sentiment == nil {
		h.sentiment = sentiment.NewAnalyzer(nil)
	}
	return h
}

// SentimentLexicon returns the lexicon used for sentiment scores.
func (h *Handler) SentimentLexicon() *sentiment.Lexicon {
	return h.sentiment.Lexicon()
}

// invocation is the state of one Run.
type invocation struct {
	h        *Handler
	ctx      context.Context
	req      *Request
	env      Env
	settings *config.Settings
	names    *namer
	vars     []host.Variable

	stopwords *analysis.Stopwords
	stemmer   *analysis.Snowball
}

type task struct {
	name string
	run  func() error
}

// Run validates req, prepares every task and then runs them in order:
// spelling, word scores, frequencies, sentiment, search, lexicon export
// and stems. Configuration errors are reported before any case is read.
func (h *Handler) Run(ctx context.Context, req *Request, env Env) (Report, error) {
	inv, err := h.newInvocation(ctx, req, env)
	if err != nil {
		return Report{}, err
	}

	var tasks []task
	for _, prepare := range []func() (*task, error){
		inv.prepareSpelling,
		inv.prepareWordScores,
		inv.prepareFrequencies,
		inv.prepareSentiment,
		inv.prepareSearch,
		inv.prepareLexicon,
		inv.prepareStems,
	} {
		t, err := prepare()
		if err != nil {
			return Report{}, err
		}
		if t != nil {
			tasks = append(tasks, *t)
		}
	}

	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		h.logger.Debug("running task", "task", t.name)
		if err := t.run(); err != nil {
			return Report{}, fmt.Errorf("%s: %w", t.name, err)
		}
	}

	report := Report{Variables: inv.names.created}
	if err := inv.report(); err != nil {
		return report, err
	}
	return report, nil
}

func (h *Handler) newInvocation(ctx context.Context, req *Request, env Env) (*invocation, error) {
	if !req.hasAction() {
		return nil, config.Errorf("no actions were specified for the command")
	}
	if env.Data == nil || env.Output == nil {
		return nil, errors.New("command requires a dataset and an output")
	}

	opts := []config.Option{
		config.WithStopwords(or(req.StopwordsLang, "english"), req.StopwordsFile),
		config.WithStemmer(or(req.StemmerLang, "english")),
		config.WithOverwrite(req.Overwrite),
		config.WithLogger(h.logger),
	}
	if req.Spelling != nil && req.Spelling.Language != "" {
		opts = append(opts, config.WithDictionaryLanguage(req.Spelling.Language))
	}
	if req.Search != nil && req.Search.Language != "" {
		opts = append(opts, config.WithLexiconLanguage(req.Search.Language))
	}
	settings := config.New(opts...)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	inv := &invocation{
		h:        h,
		ctx:      ctx,
		req:      req,
		env:      env,
		settings: settings,
		vars:     env.Data.Variables(),
	}
	if err := inv.checkVariables(); err != nil {
		return nil, err
	}
	inv.names = newNamer(inv.vars, settings.Overwrite)

	if req.Spelling != nil || req.Frequencies != nil {
		sw, err := loadStopwords(settings)
		if err != nil {
			return nil, err
		}
		inv.stopwords = sw
	}
	if req.Frequencies != nil || req.Search != nil || req.Stems != nil {
		stemmer, err := analysis.NewSnowball(settings.StemmerLanguage)
		if err != nil {
			return nil, err
		}
		inv.stemmer = stemmer
	}
	return inv, nil
}

func (inv *invocation) checkVariables() error {
	if len(inv.req.Variables) == 0 {
		if inv.req.needsVariables() {
			return config.Errorf("a task requiring a variable list was specified, but no list was given")
		}
		return nil
	}

	var bad []string
	for _, name := range inv.req.Variables {
		if !host.ValidName(name) {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		return config.Errorf("these variable names are not valid: %v", bad)
	}
	for _, name := range inv.req.Variables {
		v, ok := inv.env.Data.Variable(name)
		if !ok {
			return config.Errorf("variable %s does not exist", name)
		}
		if v.Type != host.String {
			return config.Errorf("a numeric variable was found in the variable list: %s", name)
		}
	}
	return nil
}

func loadStopwords(s *config.Settings) (*analysis.Stopwords, error) {
	if s.StopwordsFile == "" {
		return analysis.NewStopwords(s.StopwordsLanguage)
	}
	f, err := os.Open(s.StopwordsFile)
	if err != nil {
		return nil, config.Errorf("cannot open stopwords file: %v", err)
	}
	defer f.Close()
	return analysis.LoadStopwords(s.StopwordsLanguage, f)
}

// variable returns the dataset definition of a requested variable.
func (inv *invocation) variable(name string) host.Variable {
	v, _ := inv.env.Data.Variable(name)
	return v
}

// eachCase calls fn with the named values of every case. The context is
// checked between cases.
func (inv *invocation) eachCase(names []string, fn func(values []host.Value) error) error {
	cursor, err := inv.env.Data.Cases(names...)
	if err != nil {
		return err
	}
	defer cursor.Close()

	for {
		if err := inv.ctx.Err(); err != nil {
			return err
		}
		values, err := cursor.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(values); err != nil {
			return err
		}
	}
}

// transform writes one output variable per source variable, computed case
// by case from the source text.
func (inv *invocation) transform(outputs []host.Variable, fn func(text string) host.Value) error {
	for i, name := range inv.req.Variables {
		values := make([]host.Value, 0, inv.env.Data.NumCases())
		err := inv.eachCase([]string{name}, func(v []host.Value) error {
			values = append(values, fn(v[0].Str))
			return nil
		})
		if err != nil {
			return err
		}
		if err := inv.env.Data.Put(outputs[i], values); err != nil {
			return err
		}
	}
	return nil
}

func (inv *invocation) report() error {
	created := inv.names.created
	if len(created) == 0 {
		return inv.env.Output.Note("No variables were created or modified")
	}
	rows := make([]host.Row, len(created))
	for i, name := range created {
		rows[i] = host.Row{Label: strconv.Itoa(i + 1), Cells: []string{name}}
	}
	return inv.env.Output.Table(host.Table{
		Title:   "New or Modified Variables",
		Columns: []string{"Variables"},
		Rows:    rows,
	})
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
