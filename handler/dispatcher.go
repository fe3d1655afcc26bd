package handler

import (
	"check_isam/checks"
	"check_isam/config"
	"check_isam/logger"
	"check_isam/metrics"
	"check_isam/snmp"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the plugin version printed by --version.
const Version = "1.3"

const (
	pluginName = "check_isam"

	msgInvalidArgs = "Please check your arguments!"
	msgThresholds  = "Thresholds are not acceptable!"
	msgSNMPError   = "UNKNOWN - An SNMP error occurred"
	msgError       = "UNKNOWN - An error occurred"

	helpMessage = "\n Collection of Nokia ISAM Monitoring Plugins\n" +
		"\n Use '" + pluginName + " --help' for more information\n"
)

// checkOrder is the order the selectors are listed in the help text.
var checkOrder = []string{
	"board_availability",
	"board_oper_status",
	"auto_backup_status",
	"pon_utilization",
	"board_temperature",
	"nt_redundancy",
}

// Session is an open SNMP session to one device.
type Session interface {
	snmp.Querier
	Close() error
}

// DialFunc opens an SNMP session to host.
type DialFunc func(cfg config.SNMP, host, community string, log *logrus.Logger) (Session, error)

// DialSNMP opens a gosnmp session.
func DialSNMP(cfg config.SNMP, host, community string, log *logrus.Logger) (Session, error) {

	client, err := snmp.NewClient(cfg, host, community, log)

	if err != nil {

		return nil, err
	}

	if err := client.Connect(); err != nil {

		return nil, err
	}

	return client, nil
}

// Dispatcher parses the command line, runs exactly one check and turns its
// verdict or failure into plugin output and an exit code.
type Dispatcher struct {
	stdout io.Writer

	dial DialFunc

	log *logrus.Logger

	flags dispatchFlags
}

type dispatchFlags struct {
	checks map[string]*bool

	host       string
	community  string
	verbose    bool
	warning    int
	critical   int
	group      int
	configFile string
	version    bool
}

// NewDispatcher returns a Dispatcher printing to stdout. log is used until
// the configuration has been read.
func NewDispatcher(stdout io.Writer, dial DialFunc, log *logrus.Logger) *Dispatcher {

	return &Dispatcher{
		stdout: stdout,
		dial:   dial,
		log:    log,
	}
}

// Execute runs the plugin with args and returns the process exit code.
func (d *Dispatcher) Execute(ctx context.Context, args []string) int {

	code := checks.Unknown.ExitCode()

	cmd := d.command(ctx, &code)

	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {

		// flag parsing, unknown flags, or more than one check selected
		d.log.Warnf("Invalid command line: %v", err)

		fmt.Fprintln(d.stdout, msgInvalidArgs)

		return checks.Unknown.ExitCode()
	}

	return code
}

func (d *Dispatcher) command(ctx context.Context, code *int) *cobra.Command {

	d.flags = dispatchFlags{checks: make(map[string]*bool, len(checkOrder))}

	cmd := &cobra.Command{
		Use:   pluginName + " --<check> -s <host> -c <community> [flags]",
		Short: "Collection of Nokia ISAM Monitoring Plugins",
		Long:  "Collection of Nokia ISAM Monitoring Plugins\n\n" + usage(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {

			*code = d.run(ctx, cmd)

			return nil
		},
	}

	cmd.SetOut(d.stdout)

	cmd.SetErr(d.stdout)

	cmd.SilenceErrors = true

	cmd.SilenceUsage = true

	cmd.DisableAutoGenTag = true

	cmd.DisableSuggestions = true

	flags := cmd.Flags()

	flags.SortFlags = false

	for _, name := range checkOrder {

		checker, _ := checks.Get(name)

		d.flags.checks[name] = flags.Bool(name, false, checker.Description())
	}

	flags.StringVarP(&d.flags.host, "host", "s", "", "specify hostname")

	flags.StringVarP(&d.flags.community, "community", "c", "", "specify SNMPv2 community")

	flags.BoolVarP(&d.flags.verbose, "verbose", "v", false, "turn on debug output")

	flags.IntVarP(&d.flags.warning, "warning", "W", 0, "specify a warning threshold")

	flags.IntVarP(&d.flags.critical, "critical", "C", 0, "specify a critical threshold")

	flags.IntVarP(&d.flags.group, "group", "g", 0, "specify a protection-group ID (1-5)")

	flags.StringVar(&d.flags.configFile, "config", "", "path to a YAML config file")

	flags.BoolVar(&d.flags.version, "version", false, "print version and exit")

	cmd.MarkFlagsMutuallyExclusive(checkOrder...)

	return cmd
}

// usage lists every check with the flags it needs.
func usage() string {

	var b strings.Builder

	b.WriteString("Usage:\n")

	for _, name := range checkOrder {

		checker, _ := checks.Get(name)

		fmt.Fprintf(&b, "  %s %-20s %s\n", pluginName, "--"+name, checker.Usage())
	}

	return b.String()
}

// selected returns the name of the chosen check.
func (d *Dispatcher) selected() (string, bool) {

	for _, name := range checkOrder {

		if *d.flags.checks[name] {

			return name, true
		}
	}

	return "", false
}

func (d *Dispatcher) params(cmd *cobra.Command) checks.Params {

	flags := cmd.Flags()

	return checks.Params{
		Host:      d.flags.host,
		Community: d.flags.community,
		Verbose:   d.flags.verbose,
		Warning:   optionalInt(flags, "warning", &d.flags.warning),
		Critical:  optionalInt(flags, "critical", &d.flags.critical),
		GroupID:   optionalInt(flags, "group", &d.flags.group),
	}
}

// optionalInt returns value when the flag was given on the command line, nil otherwise.
func optionalInt(flags *pflag.FlagSet, name string, value *int) *int {

	if !flags.Changed(name) {

		return nil
	}

	return value
}

func (d *Dispatcher) loadConfig() (*config.Config, error) {

	if d.flags.configFile == "" {

		return config.LoadConfig(), nil
	}

	cfg, err := config.LoadFile(d.flags.configFile)

	if err != nil {

		return nil, fmt.Errorf("%w: %v", checks.ErrInvalidArgs, err)
	}

	return cfg, nil
}

func (d *Dispatcher) run(ctx context.Context, cmd *cobra.Command) (code int) {

	if d.flags.version {

		fmt.Fprintf(d.stdout, "%s %s\n", pluginName, Version)

		return checks.OK.ExitCode()
	}

	name, ok := d.selected()

	if !ok {

		fmt.Fprint(d.stdout, helpMessage+"\n")

		return checks.Unknown.ExitCode()
	}

	defer func() {

		if r := recover(); r != nil {

			code = d.fail(fmt.Errorf("%s: %v", name, r))
		}
	}()

	cfg, err := d.loadConfig()

	if err != nil {

		return d.fail(err)
	}

	d.log = logger.NewLogger(cfg.Log, d.flags.verbose)

	checker, _ := checks.Get(name)

	params := d.params(cmd)

	if err := checker.Validate(params); err != nil {

		return d.fail(err)
	}

	d.log.Debugf("Running %s against %s", name, params.Host)

	session, err := d.dial(cfg.SNMP, params.Host, params.Community, d.log)

	if err != nil {

		return d.fail(err)
	}

	defer session.Close()

	env := &checks.Env{
		SNMP:        session,
		Slots:       cfg.Slots,
		Temperature: cfg.Temperature,
	}

	if params.Verbose {

		env.Verbose = d.stdout
	}

	startTime := time.Now()

	res, err := checker.Run(ctx, env, params)

	if err != nil {

		return d.fail(err)
	}

	d.log.Debugf("%s finished with %s in %v", name, res.Severity, time.Since(startTime))

	fmt.Fprint(d.stdout, res.Output)

	d.publish(cfg, name, params.Host, res)

	return res.Severity.ExitCode()
}

// publish hands the result to the optional outputs. Their failures are logged
// only: the verdict has already been printed.
func (d *Dispatcher) publish(cfg *config.Config, check, host string, res *checks.Result) {

	if cfg.Forward.Endpoint != "" {

		report := NewReport(check, host, res, time.Now())

		if err := NewForwarder(cfg.Forward, d.log).Forward(report); err != nil {

			d.log.Warnf("Failed to forward result: %v", err)
		}
	}

	if cfg.Textfile.Path != "" {

		if err := metrics.WriteTextfile(cfg.Textfile.Path, check, host, res); err != nil {

			d.log.Warnf("Failed to write textfile %s: %v", cfg.Textfile.Path, err)
		}
	}

	if cfg.Influx.URL != "" {

		if err := metrics.WriteInflux(cfg.Influx, check, host, res, time.Now()); err != nil {

			d.log.Warnf("Failed to write result to influx: %v", err)
		}
	}
}

// fail prints the message for err and returns UNKNOWN.
func (d *Dispatcher) fail(err error) int {

	d.log.Debugf("Check failed: %v", err)

	switch {
	case errors.Is(err, checks.ErrInvalidArgs):

		d.log.Warn(err)

		fmt.Fprintln(d.stdout, msgInvalidArgs)

	case errors.Is(err, checks.ErrThresholds):

		d.log.Warn(err)

		fmt.Fprintln(d.stdout, msgThresholds)

	case errors.Is(err, checks.ErrSNMP):

		fmt.Fprintln(d.stdout, msgSNMPError)

	default:

		fmt.Fprintln(d.stdout, msgError)

		fmt.Fprintln(d.stdout, err)
	}

	return checks.Unknown.ExitCode()
}
