package preset

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qroute/pkg/coupling"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/placement"
)

// Device is a topology read from a TOML device file:
//
//	name = "lab5"
//	description = "bench device"
//	qubits = 5
//	edges = [[0, 1], [1, 2], [2, 3], [3, 4]]
//	qubit_map = [4, 3, 2, 1, 0]   # optional
//	reduce_order = [0, 1, 2, 3, 4] # optional
//
// A square matrix may be given instead of edges; qubits is then optional.
type Device struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Qubits      int      `toml:"qubits"`
	Edges       [][2]int `toml:"edges"`
	Matrix      [][]int  `toml:"matrix"`
	QubitMap    []int    `toml:"qubit_map"`
	ReduceOrder []int    `toml:"reduce_order"`
}

// LoadDeviceFile reads and validates a device file.
func LoadDeviceFile(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, err, "open device file")
	}
	defer f.Close()
	return DecodeDevice(f)
}

// DecodeDevice parses and validates a device document. Unknown keys are
// rejected so typos do not silently change the topology.
func DecodeDevice(r io.Reader) (*Device, error) {
	var d Device
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, err, "decode device file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, qerrors.Configuration("device file has unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Device) validate() error {
	if d.Name == "" {
		return qerrors.Configuration("device file needs a name")
	}
	switch {
	case d.Edges != nil && d.Matrix != nil:
		return qerrors.Configuration("device %s: give edges or matrix, not both", d.Name)
	case d.Matrix != nil:
		if d.Qubits != 0 && d.Qubits != len(d.Matrix) {
			return qerrors.Configuration("device %s: qubits = %d but matrix has %d rows", d.Name, d.Qubits, len(d.Matrix))
		}
		d.Qubits = len(d.Matrix)
	case d.Qubits <= 0:
		return qerrors.Configuration("device %s: qubits must be positive", d.Name)
	}
	return nil
}

// Graph builds the coupling graph.
func (d *Device) Graph() (*coupling.Graph, error) {
	if d.Matrix != nil {
		return coupling.FromMatrix(d.Matrix)
	}
	return coupling.FromEdges(d.Qubits, d.Edges)
}

// Topology builds the device with its optional qubit map and reduce order.
func (d *Device) Topology() (*Topology, error) {
	g, err := d.Graph()
	if err != nil {
		return nil, err
	}
	t := &Topology{Name: d.Name, Graph: g, ReduceOrder: d.ReduceOrder}
	if d.QubitMap != nil {
		t.QubitMap = make(placement.Map, len(d.QubitMap))
		for q, v := range d.QubitMap {
			t.QubitMap[q] = coupling.Vertex(v)
		}
	}
	return t, nil
}

// Preset wraps the device as a fixed catalog entry.
func (d *Device) Preset() Preset {
	desc := d.Description
	if desc == "" {
		desc = "device file"
	}
	return Preset{
		Name:        d.Name,
		Description: desc,
		Topology:    func(Params) (*Topology, error) { return d.Topology() },
	}
}

// RegisterFile loads a device file into c.
func (c *Catalog) RegisterFile(path string) (*Device, error) {
	d, err := LoadDeviceFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.Register(d.Preset()); err != nil {
		return nil, err
	}
	return d, nil
}
