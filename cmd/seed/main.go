// Seed program: writes a synthetic pedestrian counts CSV with fake sensor
// names, for build_index to load.
// Run: go run ./cmd/seed -rows 100000 -out pedestrian.csv
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-faker/faker/v4"
)

const header = "ID,Date_Time,Year,Month,Mdate,Day,Time,Sensor_ID,Sensor_Name,Hourly_Counts"

func main() {
	out := flag.String("out", "pedestrian.csv", "CSV file to write")
	rows := flag.Int("rows", 10000, "number of data rows")
	sensors := flag.Int("sensors", 40, "number of distinct sensors")
	maxCount := flag.Int("max-count", 500, "largest hourly count, keys are drawn from [0, max-count)")
	flag.Parse()

	if *rows < 0 || *sensors < 1 || *maxCount < 1 {
		log.Fatalf("rows must be >= 0, sensors and max-count >= 1")
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	w := bufio.NewWriter(f)

	names := make([]string, *sensors)
	for i := range names {
		names[i] = faker.Word() + " " + faker.Word()
	}

	start := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	var written int64
	fmt.Fprintln(w, header)
	for i := 0; i < *rows; i++ {
		sensor := i % *sensors
		ts := start.Add(time.Duration(i / *sensors) * time.Hour)
		n, err := fmt.Fprintf(w, "%d,%s,%d,%s,%d,%s,%d,%d,%s,%d\n",
			i+1,
			ts.Format("01/02/2006 03:04:05 PM"),
			ts.Year(), ts.Month(), ts.Day(), ts.Weekday(), ts.Hour(),
			sensor+1, names[sensor],
			rand.IntN(*maxCount))
		if err != nil {
			log.Fatalf("write row %d: %v", i+1, err)
		}
		written += int64(n)
	}

	if err := w.Flush(); err != nil {
		log.Fatalf("flush: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close: %v", err)
	}
	fmt.Printf("Wrote %s rows (%s) to %s\n", humanize.Comma(int64(*rows)), humanize.Bytes(uint64(written)), *out)
}
