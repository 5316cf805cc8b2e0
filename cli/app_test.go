package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/rtde-tools/trajgen/ros"
)

func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"trajgen"}, args...))
	return out.String(), errOut.String(), err
}

func decodeTrajectories(t *testing.T, out string) []ros.JointTrajectory {
	t.Helper()
	var trajectories []ros.JointTrajectory
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var jt ros.JointTrajectory
		test.That(t, json.Unmarshal([]byte(line), &jt), test.ShouldBeNil)
		trajectories = append(trajectories, jt)
	}
	return trajectories
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestGenerate(t *testing.T) {
	out, _, err := runApp(t, "", "generate", "--start", "1", "--rest", "-1.5,1.2,0,1.57,0")
	test.That(t, err, test.ShouldBeNil)

	jts := decodeTrajectories(t, out)
	test.That(t, jts, test.ShouldHaveLength, 1)
	points := jts[0].Points
	test.That(t, points, test.ShouldHaveLength, 501)
	test.That(t, points[0].Positions, test.ShouldResemble, []float64{points[0].Positions[0], -1.5, 1.2, 0, 1.57, 0})
	test.That(t, points[0].Positions[0], test.ShouldAlmostEqual, 1.0, 1e-6)
	test.That(t, points[500].Positions[0], test.ShouldAlmostEqual, 0.5, 1e-6)
	test.That(t, points[500].TimeFromStart, test.ShouldResemble, ros.Duration{Sec: 5})
}

func TestGenerateOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.json")
	_, _, err := runApp(t, "", "generate", "--start", "0", "--target", "2", "--offset", "0",
		"--final-time", "1", "--step", "0.1", "--out", path)
	test.That(t, err, test.ShouldBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	points := decodeTrajectories(t, string(data))[0].Points
	test.That(t, points, test.ShouldHaveLength, 11)
	test.That(t, points[10].Positions[0], test.ShouldAlmostEqual, 2.0, 1e-6)
}

func TestGenerateFromState(t *testing.T) {
	state := `{"name": [], "position": [0.3, 0, 0, 0, 0, 0, 9]}`

	out, _, err := runApp(t, state, "generate", "--state", "-", "--final-time", "2")
	test.That(t, err, test.ShouldBeNil)
	points := decodeTrajectories(t, out)[0].Points
	test.That(t, points, test.ShouldHaveLength, 201)
	test.That(t, points[200].Positions[0], test.ShouldAlmostEqual, -0.2, 1e-6)

	path := writeFile(t, "state.json", `{"position": [0.3, 0]}`)
	_, _, err = runApp(t, "", "generate", "--state", path)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "need 6 joint positions, got 2")
}

func TestGenerateInputErrors(t *testing.T) {
	_, _, err := runApp(t, "", "generate")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "specify exactly one of")

	_, _, err = runApp(t, "", "generate", "--start", "1", "--state", "-")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "", "generate", "--start", "1", "--rest", "1,2")
	test.That(t, err.Error(), test.ShouldContainSubstring, "--rest needs 5 values, got 2")

	_, _, err = runApp(t, "", "generate", "--start", "1", "--final-time", "-2")
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid trajectory duration")

	out, _, err := runApp(t, "", "generate", "--start", "1", "--final-time", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid trajectory duration")
	test.That(t, out, test.ShouldBeEmpty)

	_, _, err = runApp(t, "", "generate", "--start", "1", "--step", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"trajectory.sample_step"`)

	_, _, err = runApp(t, "", "generate", "--bag", filepath.Join(t.TempDir(), "missing.bag"))
	test.That(t, err.Error(), test.ShouldContainSubstring, "unable to open input file")
}

func TestConfigFlag(t *testing.T) {
	path := writeFile(t, "trajgen.json", `{"trajectory": {"final_time": 1}, "node": {"target": 3}}`)
	out, _, err := runApp(t, "", "--config", path, "generate", "--start", "0")
	test.That(t, err, test.ShouldBeNil)
	points := decodeTrajectories(t, out)[0].Points
	test.That(t, points, test.ShouldHaveLength, 101)
	test.That(t, points[100].Positions[0], test.ShouldAlmostEqual, 2.5, 1e-6)

	_, _, err = runApp(t, "", "--config", filepath.Join(t.TempDir(), "nope.json"), "generate", "--start", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot load config")
}

func TestPreview(t *testing.T) {
	out, _, err := runApp(t, "", "preview", "--start", "1", "--every", "100")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "ACCELERATION")
	test.That(t, out, test.ShouldContainSubstring, "| 500 | 5.00")
	test.That(t, out, test.ShouldContainSubstring, "| 300 | 3.00")
	test.That(t, out, test.ShouldNotContainSubstring, "| 250 |")
	test.That(t, out, test.ShouldContainSubstring, "Points")
	test.That(t, out, test.ShouldContainSubstring, "Residual")

	_, _, err = runApp(t, "", "preview", "--start", "1", "--every", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.png")
	_, logs, err := runApp(t, "", "plot", "--start", "1", "--out", path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs, test.ShouldContainSubstring, "plot written")

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bytes.HasPrefix(data, []byte("\x89PNG")), test.ShouldBeTrue)
}

func TestRun(t *testing.T) {
	states := `{"position": [1, 0, 0, 0, 0, 0]}
{"position": [2, 0, 0, 0, 0, 0]}
`
	out, logs, err := runApp(t, states, "run")
	test.That(t, err, test.ShouldBeNil)
	jts := decodeTrajectories(t, out)
	test.That(t, jts, test.ShouldHaveLength, 1)
	test.That(t, jts[0].Points[500].Positions[0], test.ShouldAlmostEqual, 0.5, 1e-6)
	test.That(t, logs, test.ShouldContainSubstring, "Compute Trajectory")
	test.That(t, logs, test.ShouldContainSubstring, "Trajectory Published")
	test.That(t, logs, test.ShouldContainSubstring, ros.TrajectoryCommandTopic)

	path := writeFile(t, "trajgen.json", `{"node": {"policy": "drop"}, "topic": "/command"}`)
	out, logs, err = runApp(t, states, "--config", path, "run")
	test.That(t, err, test.ShouldBeNil)
	jts = decodeTrajectories(t, out)
	test.That(t, jts, test.ShouldHaveLength, 2)
	test.That(t, jts[1].Points[500].Positions[0], test.ShouldAlmostEqual, 1.5, 1e-6)
	test.That(t, logs, test.ShouldContainSubstring, "/command")
}

func TestRunErrors(t *testing.T) {
	_, _, err := runApp(t, `{"position": [1]}`, "run", "--config-less")
	test.That(t, err, test.ShouldNotBeNil)

	path := writeFile(t, "trajgen.json", `{"node": {"policy": "drop"}}`)
	out, _, err := runApp(t, `{"position": [1]} {"position": [1, 0, 0, 0, 0, 0]}`, "--config", path, "run")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "insufficient joint snapshot")
	test.That(t, decodeTrajectories(t, out), test.ShouldHaveLength, 1)

	_, _, err = runApp(t, `{"position": `, "run")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode joint state")
}

func TestDebugFlag(t *testing.T) {
	_, logs, err := runApp(t, "", "--debug", "generate", "--start", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs, test.ShouldContainSubstring, "solving boundary value problem")

	_, logs, err = runApp(t, "", "generate", "--start", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs, test.ShouldNotContainSubstring, "solving boundary value problem")
}
