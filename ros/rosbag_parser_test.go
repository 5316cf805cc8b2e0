package ros

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

// bagMessage is how gobag renders a sensor_msgs/JointState once parsed back from its json output.
const bagMessage = `{
	"meta": {"secs": 1700000000, "nsecs": 120},
	"data": {
		"header": {"seq": 4, "stamp": {"secs": 1700000000, "nsecs": 100}, "frame_id": "base"},
		"name": ["shoulder_pan_joint", "shoulder_lift_joint", "elbow_joint", "wrist_1_joint", "wrist_2_joint", "wrist_3_joint"],
		"position": [0.5, -1.2, 1.1, 0, 1.57, 3.1],
		"velocity": [0, 0, 0, 0, 0, 0],
		"effort": []
	}
}`

func TestDecodeBagJointState(t *testing.T) {
	message := map[string]interface{}{}
	test.That(t, json.Unmarshal([]byte(bagMessage), &message), test.ShouldBeNil)

	js, err := DecodeBagJointState(message)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, js.Header.Stamp, test.ShouldResemble, Time{Sec: 1700000000, Nanosec: 100})
	test.That(t, js.Header.FrameID, test.ShouldEqual, "base")
	test.That(t, js.Name, test.ShouldResemble, URJointNames)
	test.That(t, js.Position, test.ShouldResemble, []float64{0.5, -1.2, 1.1, 0, 1.57, 3.1})

	snapshot, err := js.Snapshot()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, snapshot[0], test.ShouldEqual, 0.5)
}

func TestDecodeBagJointStateBadType(t *testing.T) {
	_, err := DecodeBagJointState(map[string]interface{}{
		"data": map[string]interface{}{"position": "not a list"},
	})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = DecodeBagJointState(map[string]interface{}{"data": []interface{}{1.0}})
	test.That(t, err, test.ShouldBeError, errors.New("expected map[string]interface {} but got []interface {}"))
}

func TestReadBagMissingFile(t *testing.T) {
	_, err := ReadBag("/nonexistent/joint_states.bag")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unable to open input file")
}
