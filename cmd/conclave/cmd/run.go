package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"conclave.network/conclave/lib/api"
	conclavecommon "conclave.network/conclave/lib/common"
	"conclave.network/conclave/lib/contract/native"
	"conclave.network/conclave/lib/governance"
	"conclave.network/conclave/lib/metrics"
	"conclave.network/conclave/lib/storage"
	"conclave.network/conclave/lib/voter"
	"conclave.network/conclave/lib/voting"

	"conclave.network/conclave/cmd/conclave/common"
)

const defaultBind string = "0.0.0.0:12345"
const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagVoters       string = conclavecommon.GetENVValue("CONCLAVE_VOTERS", "")
	flagThreshold    string = conclavecommon.GetENVValue("CONCLAVE_THRESHOLD", "percent:50")
	flagVotingPeriod string = conclavecommon.GetENVValue("CONCLAVE_VOTING_PERIOD", "time:1h")
	flagAllowEmpty   bool   = conclavecommon.GetENVValue("CONCLAVE_ALLOW_EMPTY_ACTIONS", "0") == "1"
	flagBind         string = conclavecommon.GetENVValue("CONCLAVE_BIND", defaultBind)
	flagLogLevel     string = conclavecommon.GetENVValue("CONCLAVE_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput    string = conclavecommon.GetENVValue("CONCLAVE_LOG_OUTPUT", "")

	flagStorageConfigString string
)

var (
	nodeCmd *cobra.Command

	voters        []voter.Voter
	threshold     voting.Threshold
	votingPeriod  voting.Duration
	storageConfig *storage.Config
	logLevel      logging.Lvl
	log           logging.Logger
)

func init() {
	var err error

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run conclave node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode()

			runNode()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = conclavecommon.GetENVValue("CONCLAVE_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagVoters, "voters", flagVoters, "set voter: <address>:<weight> [ <voter>...]")
	nodeCmd.Flags().StringVar(&flagThreshold, "threshold", flagThreshold, "passing policy, {count:<weight>, percent:<percent>, quorum:<percent>,<quorum>}")
	nodeCmd.Flags().StringVar(&flagVotingPeriod, "voting-period", flagVotingPeriod, "maximum voting period, {height:<delta>, time:<duration>}")
	nodeCmd.Flags().BoolVar(&flagAllowEmpty, "allow-empty-actions", flagAllowEmpty, "accept proposals without actions")
	nodeCmd.Flags().StringVar(&flagBind, "bind", flagBind, "address to listen on ('0.0.0.0:12345')")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagVoters(v string) (vs []voter.Voter, err error) {
	splitted := strings.Fields(v)
	if len(splitted) < 1 {
		return
	}

	for _, s := range splitted {
		parsed := strings.SplitN(s, ":", 2)
		if len(parsed) != 2 {
			err = errors.Errorf("voter must be given as '<address>:<weight>': %s", s)
			return
		}

		var weight uint64
		if weight, err = strconv.ParseUint(parsed[1], 10, 64); err != nil {
			return
		}
		vs = append(vs, voter.Voter{Address: parsed[0], Weight: weight})
	}

	return
}

func parseFlagThreshold(v string) (voting.Threshold, error) {
	parsed := strings.SplitN(v, ":", 2)
	if len(parsed) != 2 {
		return voting.Threshold{}, errors.Errorf("threshold must be given as '<kind>:<value>': %s", v)
	}

	switch parsed[0] {
	case "count":
		weight, err := strconv.ParseUint(parsed[1], 10, 64)
		if err != nil {
			return voting.Threshold{}, err
		}
		return voting.NewAbsoluteCount(weight), nil
	case "percent":
		percent, err := strconv.ParseUint(parsed[1], 10, 64)
		if err != nil {
			return voting.Threshold{}, err
		}
		return voting.NewAbsolutePercentage(percent), nil
	case "quorum":
		values := strings.SplitN(parsed[1], ",", 2)
		if len(values) != 2 {
			return voting.Threshold{}, errors.Errorf("quorum must be given as 'quorum:<percent>,<quorum>': %s", v)
		}
		percent, err := strconv.ParseUint(values[0], 10, 64)
		if err != nil {
			return voting.Threshold{}, err
		}
		quorum, err := strconv.ParseUint(values[1], 10, 64)
		if err != nil {
			return voting.Threshold{}, err
		}
		return voting.NewThresholdQuorum(percent, quorum), nil
	}

	return voting.Threshold{}, errors.Errorf("unknown threshold kind: %s", parsed[0])
}

func parseFlagVotingPeriod(v string) (voting.Duration, error) {
	parsed := strings.SplitN(v, ":", 2)
	if len(parsed) != 2 {
		return voting.Duration{}, errors.Errorf("voting period must be given as '<kind>:<value>': %s", v)
	}

	switch parsed[0] {
	case "height":
		delta, err := strconv.ParseUint(parsed[1], 10, 64)
		if err != nil {
			return voting.Duration{}, err
		}
		return voting.NewHeightDuration(delta), nil
	case "time":
		d, err := time.ParseDuration(parsed[1])
		if err != nil {
			return voting.Duration{}, err
		}
		if d < time.Second {
			return voting.Duration{}, errors.Errorf("voting period too short: %s", parsed[1])
		}
		return voting.NewTimeDuration(uint64(d / time.Second)), nil
	}

	return voting.Duration{}, errors.Errorf("unknown voting period kind: %s", parsed[0])
}

func parseFlagsNode() {
	var err error

	if len(flagVoters) < 1 {
		common.PrintFlagsError(nodeCmd, "--voters", errors.New("must be given"))
	}

	if voters, err = parseFlagVoters(flagVoters); err != nil {
		common.PrintFlagsError(nodeCmd, "--voters", err)
	}

	if threshold, err = parseFlagThreshold(flagThreshold); err != nil {
		common.PrintFlagsError(nodeCmd, "--threshold", err)
	}

	if votingPeriod, err = parseFlagVotingPeriod(flagVotingPeriod); err != nil {
		common.PrintFlagsError(nodeCmd, "--voting-period", err)
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(nodeCmd, "--log-level", err)
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = conclavecommon.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, logging.JsonFormat()); err != nil {
			common.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	logHandler = logging.CallerFileHandler(logHandler)

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	conclavecommon.SetLogging(logLevel, logHandler)
	governance.SetLogging(logLevel, logHandler)

	log.Info("Starting Conclave")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tthreshold", flagThreshold)
	parsedFlags = append(parsedFlags, "\n\tvoting-period", flagVotingPeriod)
	parsedFlags = append(parsedFlags, "\n\tallow-empty-actions", flagAllowEmpty)
	parsedFlags = append(parsedFlags, "\n\tbind", flagBind)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)

	var vl []interface{}
	for i, v := range voters {
		vl = append(vl, fmt.Sprintf("\n\tvoter#%d", i))
		vl = append(vl, fmt.Sprintf("address=%s weight=%d", v.Address, v.Weight))
	}
	parsedFlags = append(parsedFlags, vl...)

	log.Debug("parsed flags:", parsedFlags...)
}

func runNode() {
	registry, err := voter.NewRegistry(voters)
	if err != nil {
		log.Crit("failed to build voter registry", "error", err)

		os.Exit(1)
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}

	sandbox := native.NewSandbox()
	sandbox.Register("counter", native.CounterContract("counter"))
	sandbox.Register("token", native.TokenContract("token"))

	config := governance.NewConfig()
	config.MaxVotingPeriod = votingPeriod
	config.AllowEmptyActions = flagAllowEmpty

	engine, err := governance.NewEngine(st, registry, threshold, config, sandbox, governance.WallClock{})
	if err != nil {
		log.Crit("failed to launch engine", "error", err)

		os.Exit(1)
	}

	metrics.InitPrometheusMetrics()

	router := mux.NewRouter()
	router.Use(api.MetricsMiddleware)

	apiHandler := api.NewNetworkHandlerAPI(engine, "")
	apiHandler.AddAPIHandlers(router)
	router.Handle("/metrics", promhttp.Handler())

	allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
	allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
	allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})
	cors := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)

	server := &http.Server{
		Addr:    flagBind,
		Handler: ghandlers.CombinedLoggingHandler(os.Stdout, cors(router)),
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			log.Info("listening", "bind", flagBind)
			return errors.Wrap(server.ListenAndServe(), "http server stopped")
		}, func(error) {
			server.Close()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
