package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // register BMP decoding for imaging.Open

	"github.com/ericfarng/yaed/pkg/config"
	"github.com/ericfarng/yaed/pkg/edgemap"
	"github.com/ericfarng/yaed/pkg/ellipse"
)

func main() {
	inputPath := flag.String("input", "", "Path to an image containing edge-like contours")
	configPath := flag.String("config", "", "Path to a YAML options file (optional, defaults used if absent)")
	gradientThreshold := flag.Float64("gradient-threshold", 64, "Sobel gradient magnitude threshold for marking a pixel as an edge")
	verbose := flag.Bool("verbose", false, "Print numbered progress while detecting")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	fmt.Println("ELLIPSE DETECTION OVER A PRE-COMPUTED EDGE MAP")
	fmt.Println("================================")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	img, err := imaging.Open(*inputPath)
	if err != nil {
		log.Fatalf("Failed to open image: %v", err)
	}

	em := sobelEdgeMap(img, float32(*gradientThreshold))

	detector := ellipse.NewDetector(cfg.Options())
	detector.SetEdgeMap(em)

	startTime := time.Now()
	var ellipses []ellipse.Ellipse
	if *verbose || cfg.Output.Verbose {
		ellipses, err = detector.DetectVerbose()
	} else {
		ellipses, err = detector.Detect()
	}
	if err != nil {
		log.Fatalf("Detection failed: %v", err)
	}
	elapsed := time.Since(startTime)

	counters := detector.Counters()
	fmt.Printf("\nDetection completed in %.3f seconds\n", elapsed.Seconds())
	fmt.Printf("Arc segmentation: %d total, %d short, %d straight\n",
		counters.TotalLineSegmentCount, counters.ShortLineCount, counters.StraightLineCount)
	fmt.Printf("Found %d ellipse(s):\n", len(ellipses))
	for i, e := range ellipses {
		fmt.Printf("  %d: center=(%.1f, %.1f) rho=%.3f rad aAxis=%.1f bAxis=%.1f score=%.3f\n",
			i+1, e.Center[0], e.Center[1], e.Rho, e.AAxis, e.BAxis, e.Score)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// sobelEdgeMap converts img to grayscale, runs a 3x3 Sobel filter, and
// thresholds the gradient magnitude into an edgemap.DenseEdgeMap. This is
// a minimal stand-in for a full Canny pass: no Gaussian pre-smoothing, no
// non-maximum suppression, no hysteresis, just gradient + threshold, since
// a full Canny implementation sits outside this tool's scope.
func sobelEdgeMap(img image.Image, threshold float32) *edgemap.DenseEdgeMap {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	lum := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := gray.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum[y*width+x] = float32(r) / 257
		}
	}

	at := func(x, y int) float32 {
		if x < 0 || y < 0 || x >= width || y >= height {
			return 0
		}
		return lum[y*width+x]
	}

	em := edgemap.NewDenseEdgeMap(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			gy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))

			mag := float32(math.Hypot(float64(gx), float64(gy)))
			if mag >= threshold {
				em.SetEdge(x, y, gx, gy)
			}
		}
	}
	return em
}
