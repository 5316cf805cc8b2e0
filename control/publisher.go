// Package control runs the trajectory node: it turns joint state snapshots into trajectory
// commands and hands them to publishers.
package control

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rtde-tools/trajgen/logging"
	"github.com/rtde-tools/trajgen/ros"
)

// A Publisher delivers trajectory commands to a trajectory controller.
type Publisher interface {
	Publish(ctx context.Context, jt *ros.JointTrajectory) error
}

// JSONPublisher writes each trajectory as one line of JSON.
type JSONPublisher struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONPublisher returns a publisher writing JSON lines to w.
func NewJSONPublisher(w io.Writer) *JSONPublisher {
	return &JSONPublisher{enc: json.NewEncoder(w)}
}

// Publish encodes jt onto the underlying writer.
func (p *JSONPublisher) Publish(ctx context.Context, jt *ros.JointTrajectory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Wrap(p.enc.Encode(jt), "failed to write trajectory")
}

// LogPublisher logs a one line description of each trajectory instead of sending it anywhere.
type LogPublisher struct {
	logger logging.Logger
	topic  string
}

// NewLogPublisher returns a publisher that logs what would be sent to topic.
func NewLogPublisher(logger logging.Logger, topic string) *LogPublisher {
	return &LogPublisher{logger: logger, topic: topic}
}

// Publish logs the point count, duration and endpoints of jt.
func (p *LogPublisher) Publish(_ context.Context, jt *ros.JointTrajectory) error {
	if len(jt.Points) == 0 {
		return errors.New("refusing to publish empty trajectory")
	}
	first, last := jt.Points[0], jt.Points[len(jt.Points)-1]
	p.logger.Infow("publishing trajectory",
		"topic", p.topic,
		"points", len(jt.Points),
		"duration", jt.Duration(),
		"from", first.Positions,
		"to", last.Positions,
	)
	return nil
}

// MultiPublisher publishes to every publisher in order. A failing publisher does not stop the
// rest; all errors are returned combined.
type MultiPublisher []Publisher

// Publish fans jt out to all publishers.
func (mp MultiPublisher) Publish(ctx context.Context, jt *ros.JointTrajectory) error {
	var errs error
	for _, p := range mp {
		errs = multierr.Append(errs, p.Publish(ctx, jt))
	}
	return errs
}
