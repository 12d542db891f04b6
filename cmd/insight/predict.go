package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-sod/insight/internal/client"
)

func newClient(fs *flag.FlagSet, args []string) (*client.Client, error) {
	load, err := clientConfig(fs)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	return client.New(cfg)
}

func runPredict(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return flag.ErrHelp
	}
	fs := flag.NewFlagSet("predict "+args[0], flag.ContinueOnError)
	switch args[0] {
	case "carprice":
		var r client.CarPriceRequest
		fs.IntVar(&r.Year, "year", 2015, "year of purchase")
		fs.Float64Var(&r.PresentPrice, "present-price", 0, "showroom price in lakhs")
		fs.Float64Var(&r.KmsDriven, "kms", 0, "kilometres driven")
		fs.Float64Var(&r.Mileage, "mileage", 0, "mileage")
		fs.StringVar(&r.FuelType, "fuel", "Petrol", "fuel type label: CNG, Diesel or Petrol")
		fs.StringVar(&r.SellerType, "seller", "Dealer", "seller type label: Dealer or Individual")
		fs.StringVar(&r.Transmission, "transmission", "Manual", "transmission label: Automatic or Manual")
		fs.StringVar(&r.Owner, "owner", "First", "previous owners label: First, Second or Third")
		c, err := newClient(fs, args[1:])
		if err != nil {
			return err
		}
		est, err := c.CarPrice(ctx, r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, est.Formatted)
		return err
	case "sales":
		var r client.SalesRequest
		fs.Float64Var(&r.TV, "tv", 0, "tv budget")
		fs.Float64Var(&r.Radio, "radio", 0, "radio budget")
		fs.Float64Var(&r.Newspaper, "newspaper", 0, "newspaper budget")
		c, err := newClient(fs, args[1:])
		if err != nil {
			return err
		}
		est, err := c.Sales(ctx, r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, est.Formatted)
		return err
	case "spam":
		c, err := newClient(fs, args[1:])
		if err != nil {
			return err
		}
		text := strings.Join(fs.Args(), " ")
		v, err := c.Spam(ctx, client.SpamRequest{Text: text})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s (%.1f%%)\n", v.Verdict, v.Confidence*100)
		return err
	case "iris":
		var r client.IrisRequest
		fs.Float64Var(&r.SepalLength, "sepal-length", 0, "sepal length, cm")
		fs.Float64Var(&r.SepalWidth, "sepal-width", 0, "sepal width, cm")
		fs.Float64Var(&r.PetalLength, "petal-length", 0, "petal length, cm")
		fs.Float64Var(&r.PetalWidth, "petal-width", 0, "petal width, cm")
		c, err := newClient(fs, args[1:])
		if err != nil {
			return err
		}
		p, err := c.Iris(ctx, r)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintf(tw, "species\t%s\nconfidence\t%.1f%%\naccuracy\t%.4f\n", p.Species, p.Confidence*100, p.Accuracy)
		for _, pr := range p.Probabilities {
			_, _ = fmt.Fprintf(tw, "  %s\t%.4f\n", pr.Label, pr.Probability)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown model %q", args[0])
	}
}

func runDashboard(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	regions := fs.String("regions", "", "comma separated regions, empty for all")
	start := fs.String("start", "", "first day, YYYY-MM-DD")
	end := fs.String("end", "", "last day, YYYY-MM-DD")
	c, err := newClient(fs, args)
	if err != nil {
		return err
	}

	s, msg, err := c.Dashboard(ctx, client.DashboardQuery{Regions: splitList(*regions), Start: *start, End: *end})
	if err != nil {
		return err
	}
	if s == nil {
		_, err = fmt.Fprintln(out, msg)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "rows\t%d\n", s.Rows)
	_, _ = fmt.Fprintf(tw, "avg unemployment\t%.2f%%\n", s.KPIs.AvgUnemploymentRate)
	_, _ = fmt.Fprintf(tw, "max unemployment\t%.2f%%\n", s.KPIs.MaxUnemploymentRate)
	_, _ = fmt.Fprintf(tw, "avg labour participation\t%.2f%%\n\n", s.KPIs.AvgLabourParticipationRate)
	_, _ = fmt.Fprintln(tw, "REGION\tUNEMPLOYMENT\tPARTICIPATION\tROWS")
	for _, r := range s.RegionAverages {
		_, _ = fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%d\n", r.Region, r.UnemploymentRate, r.LabourParticipationRate, r.Rows)
	}
	return tw.Flush()
}

func runHealth(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	c, err := newClient(fs, args)
	if err != nil {
		return err
	}
	if err := c.Health(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, "ok")
	return err
}
