// Package ros bridges trajgen and ROS: message types, trajectory conversion and rosbag input.
package ros

import (
	"encoding/json"
	"io"
	"os"

	"github.com/edaniels/gobag/rosbag"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/rtde-tools/trajgen/utils"
)

// ReadBag loads a ROS1 bag file.
func ReadBag(filename string) (*rosbag.RosBag, error) {
	//nolint:gosec
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open input file")
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	rb := rosbag.NewRosBag()
	if err := rb.Read(f); err != nil {
		return nil, errors.Wrapf(err, "unable to read rosbag %s", filename)
	}
	return rb, nil
}

// messagesOnTopic decodes every message recorded on topic, in bag order.
func messagesOnTopic(rb *rosbag.RosBag, topic string) ([]map[string]interface{}, error) {
	if err := rb.ParseTopicsToJSON(
		"",
		func(int64) bool { return true },
		func(t string) bool { return t == topic },
		false,
	); err != nil {
		return nil, errors.Wrap(err, "failed to parse rosbag")
	}

	buf, ok := rb.TopicsAsJSON[topic]
	if !ok || buf == nil {
		return nil, errors.Errorf("no messages for topic %s", topic)
	}

	var messages []map[string]interface{}
	decoder := json.NewDecoder(buf)
	for {
		var message map[string]interface{}
		if err := decoder.Decode(&message); err != nil {
			if errors.Is(err, io.EOF) {
				return messages, nil
			}
			return nil, errors.Wrapf(err, "failed to decode message %d on %s", len(messages), topic)
		}
		messages = append(messages, message)
	}
}

// bagJointState is a sensor_msgs/JointState as gobag renders a ROS1 message.
type bagJointState struct {
	Meta struct {
		Secs  int `json:"secs"`
		Nsecs int `json:"nsecs"`
	} `json:"meta"`
	Data struct {
		Header struct {
			Stamp struct {
				Secs  int `json:"secs"`
				Nsecs int `json:"nsecs"`
			} `json:"stamp"`
			FrameID string `json:"frame_id"`
		} `json:"header"`
		Name     []string  `json:"name"`
		Position []float64 `json:"position"`
		Velocity []float64 `json:"velocity"`
		Effort   []float64 `json:"effort"`
	} `json:"data"`
}

// DecodeBagJointState converts one decoded bag message into a JointState.
func DecodeBagJointState(message map[string]interface{}) (*JointState, error) {
	if data, ok := message["data"]; ok {
		if _, ok := data.(map[string]interface{}); !ok {
			return nil, utils.NewUnexpectedTypeError(map[string]interface{}{}, data)
		}
	}
	var raw bagJointState
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &raw,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(message); err != nil {
		return nil, errors.Wrap(err, "failed to decode joint state")
	}

	return &JointState{
		Header: Header{
			Stamp: Time{
				Sec:     int32(raw.Data.Header.Stamp.Secs),
				Nanosec: uint32(raw.Data.Header.Stamp.Nsecs),
			},
			FrameID: raw.Data.Header.FrameID,
		},
		Name:     raw.Data.Name,
		Position: raw.Data.Position,
		Velocity: raw.Data.Velocity,
		Effort:   raw.Data.Effort,
	}, nil
}

// JointStatesFromBag returns every joint state recorded on topic, in bag order.
func JointStatesFromBag(rb *rosbag.RosBag, topic string) ([]*JointState, error) {
	messages, err := messagesOnTopic(rb, topic)
	if err != nil {
		return nil, err
	}
	states := make([]*JointState, 0, len(messages))
	for i, message := range messages {
		state, err := DecodeBagJointState(message)
		if err != nil {
			return nil, errors.Wrapf(err, "message %d on %s", i, topic)
		}
		states = append(states, state)
	}
	return states, nil
}
