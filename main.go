package main

import (
	"fmt"
	"log"

	"github.com/meenmo/yieldcurve/marketdata/fred"
	"github.com/meenmo/yieldcurve/metrics"
	"github.com/meenmo/yieldcurve/model"
)

func main() {
	c := fred.SampleCurve()

	tags, err := c.SortedTags()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Observed US Treasury curve:")
	for _, tag := range tags {
		fmt.Printf("  %-4s %6.2f%%\n", tag, c[tag])
	}
	fmt.Println()

	spline, err := model.NewSpline(c)
	if err != nil {
		log.Fatal(err)
	}
	nss, err := model.FitNSS(c)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(nss.Summary())
	fmt.Println()

	for _, t := range []float64{0.5, 2, 5, 10, 25} {
		sy, err := spline.Evaluate(t)
		if err != nil {
			log.Fatal(err)
		}
		ny, _ := nss.Evaluate(t)
		fmt.Printf("  t=%5.1fY  spline=%.4f%%  nss=%.4f%%\n", t, sy, ny)
	}
	fmt.Println()

	slope, err := metrics.Slope(c, metrics.DefaultShort, metrics.DefaultLong)
	if err != nil {
		log.Fatal(err)
	}
	curv, err := metrics.Curvature(c, metrics.DefaultShort, metrics.DefaultMedium, metrics.DefaultLong)
	if err != nil {
		log.Fatal(err)
	}
	dur, err := metrics.DurationApprox(spline, 5.0, 0.01)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("2s10s slope:        %+.2f\n", slope)
	fmt.Printf("2s5s10s curvature:  %+.2f\n", curv)
	fmt.Printf("5Y modified duration: %.3f years\n", dur)
}
