package metrics

import (
	"check_isam/checks"
	"check_isam/config"
	"fmt"
	"net/url"
	"time"

	client "github.com/influxdata/influxdb1-client"
)

// WriteInflux writes the verdict and performance data of one check run to
// the InfluxDB database in cfg, one point per value.
func WriteInflux(cfg config.Influx, check, host string, res *checks.Result, now time.Time) error {

	u, err := url.Parse(cfg.URL)

	if err != nil {

		return fmt.Errorf("invalid influx url %q: %w", cfg.URL, err)
	}

	c, err := client.NewClient(client.Config{
		URL:      *u,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
	})

	if err != nil {

		return fmt.Errorf("failed to create influx client: %w", err)
	}

	points := make([]client.Point, 0, len(res.Metrics)+1)

	points = append(points, client.Point{
		Measurement: "isam_check_state",
		Tags: map[string]string{
			"check": check,
			"host":  host,
			"state": res.Severity.String(),
		},
		Time:      now,
		Precision: "s",
		Fields: map[string]interface{}{
			"value": float64(res.Severity.ExitCode()),
		},
	})

	for _, m := range res.Metrics {

		tags := map[string]string{
			"check": check,
			"host":  host,
			"label": m.Label,
		}

		// InfluxDB rejects empty tag values
		if m.UOM != "" {

			tags["uom"] = m.UOM
		}

		points = append(points, client.Point{
			Measurement: "isam_check_perfdata",
			Tags:        tags,
			Time:        now,
			Precision:   "s",
			Fields: map[string]interface{}{
				"value": m.Value,
			},
		})
	}

	bp := client.BatchPoints{
		Points:          points,
		Database:        cfg.Database,
		RetentionPolicy: cfg.RetentionPolicy,
		Precision:       "s",
	}

	if _, err := c.Write(bp); err != nil {

		return fmt.Errorf("failed to write %d points to influx: %w", len(points), err)
	}

	return nil
}
