package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/meenmo/yieldcurve/curve"
	"github.com/meenmo/yieldcurve/marketdata/fred"
	"github.com/meenmo/yieldcurve/metrics"
	"github.com/meenmo/yieldcurve/model"
	"github.com/meenmo/yieldcurve/plot"
	"github.com/meenmo/yieldcurve/store"
	"github.com/meenmo/yieldcurve/utils"
)

func newFREDClient() *fred.Client {
	c := fred.NewClient()
	if cfg.FRED.BaseURL != "" {
		c.BaseURL = cfg.FRED.BaseURL
	}
	if cfg.FRED.UserAgent != "" {
		c.UserAgent = cfg.FRED.UserAgent
	}
	if cfg.FRED.TimeoutSec > 0 {
		c.HTTPClient = &http.Client{Timeout: time.Duration(cfg.FRED.TimeoutSec) * time.Second}
	}
	return c
}

func openStore() (store.DB, *store.Store, error) {
	db, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := store.InitSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, store.NewStore(db), nil
}

// loadCurve resolves the curve source shared by fit/metrics/plot: the bundled
// sample (--offline), a stored snapshot (--date), or a live FRED fetch.
func loadCurve(cmd *cobra.Command) (curve.Curve, error) {
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		return fred.SampleCurve(), nil
	}
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		db, st, err := openStore()
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return st.LoadCurve(date)
	}
	return newFREDClient().YieldCurve(context.Background())
}

func printCurve(c curve.Curve) error {
	tags, err := c.SortedTags()
	if err != nil {
		return err
	}
	fmt.Printf("%-6s %10s\n", "Tenor", "Yield (%)")
	for _, tag := range tags {
		fmt.Printf("%-6s %10.2f\n", tag, c[tag])
	}
	return nil
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("offline", false, "use the bundled sample curve instead of fetching")
	cmd.Flags().String("date", "", "load the curve stored under this date (YYYY-MM-DD)")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the current yield curve from FRED",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newFREDClient().YieldCurve(context.Background())
		if err != nil {
			return err
		}
		if err := printCurve(c); err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			date := time.Now().UTC().Format(utils.DateLayout)
			db, st, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			if err := st.SaveCurve(date, c); err != nil {
				return err
			}
			fmt.Printf("saved %d maturities under %s\n", len(c), date)
		}
		return nil
	},
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit spline and NSS models to the curve",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCurve(cmd)
		if err != nil {
			return err
		}
		if err := printCurve(c); err != nil {
			return err
		}
		fmt.Println()

		spline, err := model.NewSpline(c)
		if err != nil {
			return err
		}
		nss, err := model.FitNSS(c)
		if err != nil {
			return err
		}

		fmt.Print(nss.Summary())
		fmt.Println()

		years, _ := spline.Nodes()
		fmt.Printf("%-8s %12s %12s\n", "Years", "Spline (%)", "NSS (%)")
		for _, t := range years {
			sy, err := spline.Evaluate(t)
			if err != nil {
				return err
			}
			ny, _ := nss.Evaluate(t)
			fmt.Printf("%-8.3f %12.4f %12.4f\n", t, sy, ny)
		}
		return nil
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Report slope, curvature, forward rates and duration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCurve(cmd)
		if err != nil {
			return err
		}

		short, _ := cmd.Flags().GetString("short")
		medium, _ := cmd.Flags().GetString("medium")
		long, _ := cmd.Flags().GetString("long")

		slope, err := metrics.Slope(c, short, long)
		if err != nil {
			return err
		}
		curv, err := metrics.Curvature(c, short, medium, long)
		if err != nil {
			return err
		}
		fmt.Printf("slope     (%s-%s):    %+.4f\n", long, short, utils.RoundTo(slope, 4))
		fmt.Printf("curvature (%s/%s/%s): %+.4f\n", short, medium, long, utils.RoundTo(curv, 4))

		spline, err := model.NewSpline(c)
		if err != nil {
			return err
		}
		grid, _, err := c.Points()
		if err != nil {
			return err
		}
		forwards, err := metrics.ForwardRates(spline, grid)
		if err != nil {
			return err
		}

		fmt.Printf("\n%-8s %14s\n", "Years", "Forward (%)")
		for i, t := range grid {
			fmt.Printf("%-8.3f %14.4f\n", t, forwards[i])
		}

		durT, _ := cmd.Flags().GetFloat64("duration-maturity")
		dur, err := metrics.DurationApprox(spline, durT, 0.01)
		if err != nil {
			return err
		}
		fmt.Printf("\nmodified duration at %.1fY: %.4f years\n", durT, dur)
		return nil
	},
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render observed points and fitted curves to PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCurve(cmd)
		if err != nil {
			return err
		}

		spline, err := model.NewSpline(c)
		if err != nil {
			return err
		}
		nss, err := model.FitNSS(c)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		opt := plot.Options{Title: cfg.Plot.Title, Points: cfg.Plot.Points}
		if err := plot.Save(out, c, spline, nss, opt); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored curve snapshot dates",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, st, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		dates, err := st.Dates()
		if err != nil {
			return err
		}
		if len(dates) == 0 {
			fmt.Println("no curves stored")
			return nil
		}
		for _, d := range dates {
			fmt.Println(d)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().Bool("save", false, "store the fetched curve in the history database")

	addSourceFlags(fitCmd)
	addSourceFlags(plotCmd)
	addSourceFlags(metricsCmd)

	metricsCmd.Flags().String("short", metrics.DefaultShort, "short maturity tag")
	metricsCmd.Flags().String("medium", metrics.DefaultMedium, "medium maturity tag")
	metricsCmd.Flags().String("long", metrics.DefaultLong, "long maturity tag")
	metricsCmd.Flags().Float64("duration-maturity", 5.0, "maturity (years) for the duration estimate")

	plotCmd.Flags().String("out", "yieldcurve.png", "output PNG path")
}
