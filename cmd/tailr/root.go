package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oddbit-io/tailr"
	"github.com/oddbit-io/tailr/pkg/offset"
	"github.com/oddbit-io/tailr/pkg/resource"
)

var (
	linesSpec  string
	bytesSpec  string
	quiet      bool
	colorMode  string
	configPath string

	s3Region    string
	s3Profile   string
	s3AccessKey string
	s3SecretKey string
	azConnStr   string
)

var rootCmd = &cobra.Command{
	Use:   "tailr [flags] FILE...",
	Short: "Print the trailing lines or bytes of files",
	Long: `Tailr prints the trailing part of each input: the last N lines by default,
the last N bytes with -c, or everything from line/byte N onward when the
count carries a leading "+" ("+0" means the whole input).

Inputs are file paths, "-" for standard input, s3://bucket/key objects or
az://container/blob blobs.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runTail,
}

func init() {
	rootCmd.Flags().StringVarP(&linesSpec, "lines", "n", "10", "Number of lines (+N starts at line N)")
	rootCmd.Flags().StringVarP(&bytesSpec, "bytes", "c", "", "Number of bytes (+N starts at byte N)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-file headers")
	rootCmd.Flags().StringVar(&colorMode, "color", "auto", "Color headers: auto, always, never")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML defaults file")
	rootCmd.Flags().StringVar(&s3Region, "s3-region", "", "AWS region for s3:// inputs")
	rootCmd.Flags().StringVar(&s3Profile, "s3-profile", "", "AWS shared-config profile for s3:// inputs")
	rootCmd.Flags().StringVar(&s3AccessKey, "s3-access-key", "", "Static AWS access key for s3:// inputs")
	rootCmd.Flags().StringVar(&s3SecretKey, "s3-secret-key", "", "Static AWS secret key for s3:// inputs")
	rootCmd.Flags().StringVar(&azConnStr, "azure-connection-string", "", "Azure Storage connection string for az:// inputs")
	rootCmd.MarkFlagsMutuallyExclusive("lines", "bytes")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	applyConfig(cmd, cfg)

	req, err := buildRequest()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	opener := &resource.Opener{Stdin: cmd.InOrStdin()}
	if hasPrefixArg(args, "s3://") {
		client, err := resource.NewS3Client(ctx, s3Region, s3Profile, s3AccessKey, s3SecretKey)
		if err != nil {
			return err
		}
		opener.S3 = client
	}
	if hasPrefixArg(args, "az://") {
		connStr := azConnStr
		if connStr == "" {
			connStr = os.Getenv("AZURE_STORAGE_CONNECTION_STRING")
		}
		if connStr == "" {
			return errors.New("az:// inputs need --azure-connection-string or AZURE_STORAGE_CONNECTION_STRING")
		}
		client, err := resource.NewAzureClient(connStr)
		if err != nil {
			return err
		}
		opener.Azure = client
	}

	resources := make([]tailr.Resource, 0, len(args))
	for _, arg := range args {
		res, err := opener.Resolve(arg)
		if err != nil {
			return err
		}
		resources = append(resources, res)
	}

	// Totals for every input are independent, so they are computed in
	// parallel before output starts; emission stays in argument order.
	counts := tailr.Precount(ctx, resources, req.unitForCLI())

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	tailer := tailr.Tailer{Request: req.Request}
	headers := !quiet && len(resources) > 1
	header := newHeaderWriter(out, colorMode)

	var failed bool
	emitted := false
	for i, res := range resources {
		if counts[i].Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", res.Name(), counts[i].Err)
			failed = true
			continue
		}
		if headers {
			header(emitted, res.Name())
		}
		emitted = true
		if err := tailer.TailTotal(ctx, res, counts[i].Total, out); err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", res.Name(), err)
			failed = true
		}
	}
	if failed {
		return errors.New("some inputs could not be read")
	}
	return nil
}

// cliRequest wraps the engine request with the unit it was built from.
type cliRequest struct {
	tailr.Request
}

func (r cliRequest) unitForCLI() tailr.Unit {
	if r.Bytes != nil {
		return tailr.Bytes
	}
	return tailr.Lines
}

// buildRequest parses the -n/-c flag values. Byte mode wins when -c was
// given; both flags at once are rejected by cobra before this runs.
func buildRequest() (cliRequest, error) {
	if bytesSpec != "" {
		off, err := tailr.ParseOffset(bytesSpec)
		if err != nil {
			return cliRequest{}, fmt.Errorf("illegal byte count -- %s", offsetText(err))
		}
		return cliRequest{tailr.Request{Bytes: &off}}, nil
	}
	off, err := tailr.ParseOffset(linesSpec)
	if err != nil {
		return cliRequest{}, fmt.Errorf("illegal line count -- %s", offsetText(err))
	}
	return cliRequest{tailr.Request{Lines: off}}, nil
}

// offsetText recovers the original specification from a parse error.
func offsetText(err error) string {
	var invalid *offset.InvalidError
	if errors.As(err, &invalid) {
		return invalid.Text
	}
	return err.Error()
}

func hasPrefixArg(args []string, prefix string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}
