package db

import (
	"fmt"
	"log/slog"
	"math/big"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"gmseer/config"
	"gmseer/interfaces"
	"gmseer/model"
)

// influxSink mirrors persisted change sets into time-series points for dashboards.
type influxSink struct {
	cfg    config.InfluxDBConfig
	client influxdb2.Client
	writer api.WriteAPI
}

var _ interfaces.Sink = (*influxSink)(nil)

func NewInfluxSink(cfg config.InfluxDBConfig) interfaces.Sink {
	slog.Info("connecting to influx", "url", cfg.URL, "bucket", cfg.Bucket)
	h := &influxSink{cfg: cfg}
	h.client = influxdb2.NewClient(cfg.URL, cfg.Token)
	h.writer = h.client.WriteAPI(cfg.Org, cfg.Bucket)
	go func() {
		for err := range h.writer.Errors() {
			slog.Error("influx write error", "error", err)
		}
	}()
	return h
}

// float renders a big amount for charting; precision loss is acceptable there.
func float(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

func eventTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func (h *influxSink) WriteChangeSet(changes *model.ChangeSet, batch *model.Batch) {
	for _, p := range changeSetPoints(changes, batch) {
		h.writer.WritePoint(p)
	}
}

func changeSetPoints(changes *model.ChangeSet, batch *model.Batch) []*write.Point {
	points := make([]*write.Point, 0, changes.Len()+1)
	for _, t := range changes.Transfers {
		points = append(points, influxdb2.NewPoint("transfer",
			map[string]string{"currency": t.Currency.String(), "from": t.FromID, "to": t.ToID},
			map[string]interface{}{"amount": float(t.Amount), "fee": float(t.Fee), "block": t.BlockNumber, "id": t.ID},
			eventTime(t.Timestamp)))
	}
	for _, b := range changes.FrenBurns {
		burnedFor := "nothing"
		if b.BurnedFor != nil {
			burnedFor = b.BurnedFor.String()
		}
		points = append(points, influxdb2.NewPoint("fren_burned",
			map[string]string{"account": b.AccountID, "burnedFor": burnedFor},
			map[string]interface{}{"amount": float(b.BurnedAmount), "block": b.BlockNumber, "id": b.ID},
			eventTime(b.Timestamp)))
	}
	now := time.Now()
	for _, bal := range changes.Balances {
		points = append(points, influxdb2.NewPoint("balance",
			map[string]string{"account": bal.AccountID, "currency": bal.Currency.String()},
			map[string]interface{}{"free": float(bal.Free), "reserved": float(bal.Reserved), "total": float(bal.Total), "block": bal.UpdatedAt},
			now))
	}
	points = append(points, influxdb2.NewPoint("batch",
		map[string]string{"source": batch.Source},
		map[string]interface{}{
			"from": batch.From, "to": batch.To,
			"accounts": len(changes.Accounts), "balances": len(changes.Balances),
			"transfers": len(changes.Transfers), "burns": len(changes.FrenBurns),
		},
		now))
	return points
}

func (h *influxSink) Flush() {
	h.writer.Flush()
}

func (h *influxSink) Close() {
	h.writer.Flush()
	h.client.Close()
}

func (h *influxSink) String() string {
	return fmt.Sprintf("influx(%s/%s)", h.cfg.URL, h.cfg.Bucket)
}
