package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/config"
	"github.com/worldsacross/tutor-viewer/internal/export"
	"github.com/worldsacross/tutor-viewer/internal/gateway"
	"github.com/worldsacross/tutor-viewer/internal/logger"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/worldsacross/tutor-viewer/internal/present"
	"github.com/worldsacross/tutor-viewer/internal/service"
	"golang.org/x/term"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 120

type options struct {
	search      string
	page        int
	specialties []string
	nationality string
	output      string
	all         bool
}

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	var opts options
	var specialties multiFlag
	flag.StringVar(&opts.search, "search", "", "Filter by search term")
	flag.IntVar(&opts.page, "page", 1, "Page to show")
	flag.Var(&specialties, "specialty", "Tutor specialty filter (repeatable)")
	flag.StringVar(&opts.nationality, "nationality", "", "Tutor nationality filter")
	flag.StringVar(&opts.output, "o", "tutorias.xlsx", "Output file for export")
	flag.BoolVar(&opts.all, "all", false, "Show every page instead of one")
	flag.Usage = printUsage
	flag.Parse()
	opts.specialties = specialties

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.SetupWriter(cfg.LogLevel, "pretty", os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := gateway.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout, log)
	app := newApp(client, cfg, log, os.Stdout, terminalWidth())

	if err := app.run(ctx, args[0], args[1:], opts); err != nil {
		log.Error().Err(err).Str("command", args[0]).Msg("Command failed")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: tutorctl [flags] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  tutors          List tutors")
	fmt.Fprintln(os.Stderr, "  specialties     List tutor specialties")
	fmt.Fprintln(os.Stderr, "  students        List students")
	fmt.Fprintln(os.Stderr, "  classes         List classes with status counts")
	fmt.Fprintln(os.Stderr, "  export          Write every collection to an XLSX workbook (-o)")
	fmt.Fprintln(os.Stderr, "  raw <path>      Print the upstream JSON of tutors, users or booking")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

type app struct {
	client   *gateway.Client
	tutors   *service.TutorService
	students *service.StudentService
	classes  *service.ClassService
	log      zerolog.Logger
	out      io.Writer
	width    int
}

func newApp(client *gateway.Client, cfg *config.Config, log zerolog.Logger, out io.Writer, width int) *app {
	model.SetLocation(cfg.Location)
	format := present.NewFormatter(cfg.Locale, cfg.Location)
	return &app{
		client:   client,
		tutors:   service.NewTutorService(client, format, cfg.TutorPageSize, log),
		students: service.NewStudentService(client, format, cfg.StudentPageSize, log),
		classes:  service.NewClassService(client, format, cfg.ClassPageSize, log),
		log:      log,
		out:      out,
		width:    width,
	}
}

func (a *app) run(ctx context.Context, command string, args []string, opts options) error {
	switch command {
	case "tutors":
		return a.listTutors(ctx, opts)
	case "specialties":
		if err := a.tutors.Load(ctx); err != nil {
			return err
		}
		for _, s := range a.tutors.Specialties() {
			fmt.Fprintln(a.out, s)
		}
		return nil
	case "students":
		return a.listStudents(ctx, opts)
	case "classes":
		return a.listClasses(ctx, opts)
	case "export":
		return a.exportAll(ctx, opts)
	case "raw":
		if len(args) < 1 {
			return fmt.Errorf("raw requires a path argument")
		}
		return a.raw(ctx, args[0])
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) listTutors(ctx context.Context, opts options) error {
	if err := a.tutors.Load(ctx); err != nil {
		return err
	}
	for _, s := range opts.specialties {
		a.tutors.ToggleSpeciality(s)
	}
	a.tutors.SetNationality(opts.nationality)
	a.tutors.SetSearchTerm(opts.search)
	a.goToPage(a.tutors.SetPage, opts.page)

	var views []model.TutorView
	if opts.all {
		views = a.tutors.Filtered()
	} else {
		views = a.tutors.Page().Items
	}

	rows := make([][]string, len(views))
	for i, t := range views {
		rows[i] = []string{t.ID.String(), t.FullName(), t.Speciality, t.Nationality, strconv.Itoa(t.Age), t.Email}
	}
	a.header(a.tutors.Header())
	a.table([]string{"ID", "NOMBRE", "ESPECIALIDAD", "NACIONALIDAD", "EDAD", "EMAIL"}, rows)
	a.footer(opts.all, a.tutors.Page().Page, a.tutors.PageNumbers())
	return nil
}

func (a *app) listStudents(ctx context.Context, opts options) error {
	if err := a.students.Load(ctx); err != nil {
		return err
	}
	a.students.SetSearchTerm(opts.search)
	a.goToPage(a.students.SetPage, opts.page)

	var views []model.StudentView
	if opts.all {
		views = a.students.Filtered()
	} else {
		views = a.students.Page().Items
	}

	rows := make([][]string, len(views))
	for i, s := range views {
		rows[i] = []string{s.ID.String(), s.FirstName + " " + s.LastName, strconv.Itoa(s.Age), s.DateOfBirthLabel, s.Address}
	}
	a.header(a.students.Header())
	a.table([]string{"ID", "NOMBRE", "EDAD", "NACIMIENTO", "DIRECCIÓN"}, rows)
	a.footer(opts.all, a.students.Page().Page, a.students.PageNumbers())
	return nil
}

func (a *app) listClasses(ctx context.Context, opts options) error {
	if err := a.classes.Load(ctx); err != nil {
		return err
	}
	a.classes.SetSearchTerm(opts.search)
	a.goToPage(a.classes.SetPage, opts.page)

	var views []model.ClassView
	if opts.all {
		views = a.classes.Filtered()
	} else {
		views = a.classes.Page().Items
	}

	rows := make([][]string, len(views))
	for i, c := range views {
		rows[i] = []string{
			c.ID.String(),
			c.Tutor.FirstName + " " + c.Tutor.LastName,
			c.Student.FirstName + " " + c.Student.LastName,
			c.DateLabel,
			c.StartTimeLabel + " - " + c.EndTimeLabel,
			string(c.Status),
		}
	}
	a.header(a.classes.Header())
	a.table([]string{"ID", "TUTOR", "ESTUDIANTE", "FECHA", "HORARIO", "ESTADO"}, rows)

	st := a.classes.Stats()
	fmt.Fprintf(a.out, "\nTotal %d · activas %d · completadas %d · próximas %d\n",
		st.Total, st.Active, st.Completed, st.Upcoming)
	a.footer(opts.all, a.classes.Page().Page, a.classes.PageNumbers())
	return nil
}

// exportAll loads the three collections concurrently and writes one sheet
// per collection. Search and tutor filters apply to their sheets.
func (a *app) exportAll(ctx context.Context, opts options) error {
	home := service.NewHomeService(a.tutors, a.students, a.classes, a.log)
	for _, res := range home.RefreshAll(ctx) {
		if res.Error != "" {
			return fmt.Errorf("load %s: %s", res.Name, res.Error)
		}
	}

	q := model.ListQuery{Search: opts.search, Specialties: opts.specialties, Nationality: opts.nationality}
	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	defer f.Close()

	err = export.Write(f,
		export.TutorSheet(a.tutors.Matching(q)),
		export.StudentSheet(a.students.Matching(model.ListQuery{Search: opts.search})),
		export.ClassSheet(a.classes.Matching(model.ListQuery{Search: opts.search})),
	)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opts.output, err)
	}

	a.log.Info().Str("file", opts.output).Msg("Workbook written")
	return nil
}

func (a *app) raw(ctx context.Context, path string) error {
	items, err := a.client.GetRaw(ctx, "/"+strings.TrimLeft(path, "/"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func (a *app) goToPage(setPage func(int) bool, page int) {
	if !setPage(page) && page != 1 {
		a.log.Warn().Int("page", page).Msg("Page out of range, showing page 1")
	}
}

func (a *app) header(h model.PageHeader) {
	fmt.Fprintln(a.out, h.Title)
	if h.Subtitle != "" {
		fmt.Fprintln(a.out, h.Subtitle)
	}
	fmt.Fprintln(a.out)
}

func (a *app) footer(all bool, current int, pages []int) {
	if all || len(pages) == 0 {
		return
	}
	fmt.Fprintf(a.out, "\nPágina %d de %d\n", current, len(pages))
}

// table prints an aligned table, truncating the last column so each line
// fits the terminal.
func (a *app) table(header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "Sin resultados")
		return
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], len([]rune(cell)))
		}
	}

	const padding = 2
	used := 0
	for _, w := range widths[:len(widths)-1] {
		used += w + padding
	}
	lastMax := max(a.width-used, 4)

	tw := tabwriter.NewWriter(a.out, 0, 0, padding, ' ', 0)
	writeRow := func(cells []string) {
		last := len(cells) - 1
		cells = append([]string(nil), cells...)
		cells[last] = truncate(cells[last], lastMax)
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
	_ = tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
