package export

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/deepscene/det3d/pkg/nn"
)

// params file layout, all little-endian:
//   magic "D3DP" | uint32 count
//   per parameter:
//     uint32 name length | name bytes
//     uint32 rank        | int64 dims
//     uint32 data length | float32 data
var paramsMagic = [4]byte{'D', '3', 'D', 'P'}

func writeParams(path string, params []nn.Parameter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(paramsMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(params))); err != nil {
		return err
	}

	for _, p := range params {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(p.Name))); err != nil {
			return err
		}
		if _, err := w.WriteString(p.Name); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(p.Shape))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.Shape); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(p.Data))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.Data); err != nil {
			return err
		}
	}

	return w.Flush()
}

// ReadParams loads a params file written by TraceAndSave.
func ReadParams(path string) ([]nn.Parameter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != paramsMagic {
		return nil, errors.Errorf("%s is not a det3d params file", path)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	params := make([]nn.Parameter, 0, count)
	for i := uint32(0); i < count; i++ {
		var nameLen uint32
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, err
		}

		var rank uint32
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, err
		}
		shape := make([]int64, rank)
		if err := binary.Read(r, binary.LittleEndian, shape); err != nil {
			return nil, err
		}

		var dataLen uint32
		if err := binary.Read(r, binary.LittleEndian, &dataLen); err != nil {
			return nil, err
		}
		data := make([]float32, dataLen)
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return nil, err
		}

		params = append(params, nn.Parameter{Name: string(name), Shape: shape, Data: data})
	}

	return params, nil
}
