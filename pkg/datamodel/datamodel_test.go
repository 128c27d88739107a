package datamodel

import (
	"database/sql/driver"
	"testing"

	"github.com/frankban/quicktest"

	"github.com/deepscene/det3d/pkg/detection"
)

func TestDatamodel_ExportStatusScanValue(t *testing.T) {
	c := quicktest.New(t)

	v, err := ExportStatusRunning.Value()
	c.Assert(err, quicktest.IsNil)
	c.Assert(v, quicktest.Equals, driver.Value("running"))

	var s ExportStatus
	c.Assert(s.Scan("failed"), quicktest.IsNil)
	c.Assert(s, quicktest.Equals, ExportStatusFailed)

	c.Assert(s.Scan(1), quicktest.IsNotNil)
}

func TestDatamodel_JSONBRoundTrip(t *testing.T) {
	c := quicktest.New(t)

	in := JSONB{"sensor": "lidar", "box_dim": float64(9)}
	v, err := in.Value()
	c.Assert(err, quicktest.IsNil)

	var out JSONB
	c.Assert(out.Scan([]byte(v.(string))), quicktest.IsNil)
	c.Assert(out, quicktest.DeepEquals, in)
}

func TestDatamodel_SpecMetadata(t *testing.T) {
	c := quicktest.New(t)

	meta := SpecMetadata(
		[]detection.Spec{{Name: "points", DType: detection.Float32, Shape: []int64{-1, 4}}},
		[]detection.Spec{{Name: "box3d", DType: detection.Float32, Shape: []int64{-1, 7}}},
	)

	inputs := meta["inputs"].([]map[string]interface{})
	c.Assert(inputs, quicktest.HasLen, 1)
	c.Assert(inputs[0]["name"], quicktest.Equals, "points")
	c.Assert(inputs[0]["dtype"], quicktest.Equals, "float32")

	outputs := meta["outputs"].([]map[string]interface{})
	c.Assert(outputs, quicktest.HasLen, 1)
	c.Assert(outputs[0]["name"], quicktest.Equals, "box3d")
}
