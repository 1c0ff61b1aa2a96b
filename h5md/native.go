package h5md

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/multierr"
	"gonum.org/v1/hdf5"

	traj "github.com/atomvista/gotraj"
)

//Dataset paths inside the container, following the h5md layout with a
//single particles group named atoms.
const (
	positionPath    = "/particles/atoms/position/value"
	speciesPath     = "/particles/atoms/species/value"
	boxPath         = "/particles/atoms/box/edges/value"
	observablesPath = "/observables"
)

//nativeStore reads through the HDF5 C library, which wants a real file:
//the raw bytes are spilled to a temporary file for the store's lifetime.
type nativeStore struct {
	path string
	file *hdf5.File
}

func openNative(raw []byte) (Store, error) {
	tmp, err := os.CreateTemp("", "gotraj-*.h5")
	if err != nil {
		return nil, err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	f, err := hdf5.OpenFile(tmp.Name(), hdf5.F_ACC_RDONLY)
	if err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	return &nativeStore{path: tmp.Name(), file: f}, nil
}

func (s *nativeStore) Close() error {
	err := s.file.Close()
	return multierr.Append(err, os.Remove(s.path))
}

//openDims opens a dataset and reads its extent. The caller closes the
//dataset when err is nil.
func (s *nativeStore) openDims(path string) (*hdf5.Dataset, []uint, error) {
	dset, err := s.file.OpenDataset(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %s", MissingDataset, path)
	}
	space := dset.Space()
	dims, _, err := space.SimpleExtentDims()
	space.Close()
	if err != nil {
		dset.Close()
		return nil, nil, err
	}
	return dset, dims, nil
}

//readRow reads row frame of a dataset, flattening the remaining
//dimensions into out, a pointer to a slice of the matching length.
func readRow(dset *hdf5.Dataset, dims []uint, frame int, out interface{}) error {
	offset := make([]uint, len(dims))
	offset[0] = uint(frame)
	count := append([]uint{1}, dims[1:]...)
	space := dset.Space()
	defer space.Close()
	if err := space.SelectHyperslab(offset, nil, count, nil); err != nil {
		return err
	}
	mem, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return err
	}
	defer mem.Close()
	return dset.ReadSubset(out, mem, space)
}

func (s *nativeStore) FrameCount() (int, error) {
	dset, dims, err := s.openDims(positionPath)
	if err != nil {
		return 0, err
	}
	dset.Close()
	if len(dims) != 3 || dims[2] != 3 {
		return 0, fmt.Errorf("%s: %s", BadShape, positionPath)
	}
	return int(dims[0]), nil
}

func (s *nativeStore) ReadFrame(frame int) (*traj.Frame, error) {
	dset, dims, err := s.openDims(positionPath)
	if err != nil {
		return nil, err
	}
	defer dset.Close()
	if len(dims) != 3 || dims[2] != 3 {
		return nil, fmt.Errorf("%s: %s", BadShape, positionPath)
	}
	if frame < 0 || frame >= int(dims[0]) {
		return nil, fmt.Errorf("%s: %d", OutOfRange, frame)
	}
	natoms := int(dims[1])
	pos := make([]float64, natoms*3)
	if natoms > 0 {
		if err := readRow(dset, dims, frame, &pos); err != nil {
			return nil, err
		}
	}
	numbers, err := s.readSpecies(frame, natoms)
	if err != nil {
		return nil, err
	}
	lattice, err := s.readCell(frame)
	if err != nil {
		return nil, err
	}
	scalars, err := s.readObservables(frame)
	if err != nil {
		return nil, err
	}

	var frac func([3]float64) [3]float64
	if lattice != nil {
		if fr, ferr := lattice.Fractionalizer(); ferr == nil {
			frac = fr
		}
	}
	sites := make([]traj.Site, natoms)
	for i := range sites {
		sym := traj.SymbolFromNumber(int(numbers[i]))
		sites[i].Species = sym
		sites[i].Label = sym
		sites[i].Xyz = [3]float64{pos[3*i], pos[3*i+1], pos[3*i+2]}
		if frac != nil {
			sites[i].Abc = frac(sites[i].Xyz)
		}
	}
	keys := make([]string, 0, len(scalars))
	for k := range scalars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var md traj.Metadata
	for _, k := range keys {
		md.Set(k, traj.Num(scalars[k]))
	}
	var pbc [3]bool
	if lattice != nil {
		pbc = [3]bool{true, true, true}
	}
	return &traj.Frame{
		Structure: traj.Structure{Sites: sites, Lattice: lattice, PBC: pbc},
		Metadata:  md,
	}, nil
}

func (s *nativeStore) ReadScalars(frame int) (map[string]float64, error) {
	n, err := s.FrameCount()
	if err != nil {
		return nil, err
	}
	if frame < 0 || frame >= n {
		return nil, fmt.Errorf("%s: %d", OutOfRange, frame)
	}
	return s.readObservables(frame)
}

//readSpecies reads atomic numbers, either static over the whole run or
//with a leading time dimension.
func (s *nativeStore) readSpecies(frame, natoms int) ([]int32, error) {
	dset, dims, err := s.openDims(speciesPath)
	if err != nil {
		return nil, err
	}
	defer dset.Close()
	numbers := make([]int32, natoms)
	if natoms == 0 {
		return numbers, nil
	}
	switch {
	case len(dims) == 1 && int(dims[0]) == natoms:
		if err := dset.Read(&numbers); err != nil {
			return nil, err
		}
	case len(dims) == 2 && int(dims[1]) == natoms && frame < int(dims[0]):
		if err := readRow(dset, dims, frame, &numbers); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s: %s", BadShape, speciesPath)
	}
	return numbers, nil
}

//readCell returns the cell for one frame, or nil when the container has
//no box. A 3-vector holds cuboid edge lengths and a 3x3 block full cell
//vectors; either may carry a leading time dimension. A bare 3x3 extent
//is always taken as a static full cell, never as three cuboid frames.
func (s *nativeStore) readCell(frame int) (*traj.Lattice, error) {
	dset, dims, err := s.openDims(boxPath)
	if err != nil {
		return nil, nil
	}
	defer dset.Close()
	var cell [3][3]float64
	switch {
	case len(dims) == 1 && dims[0] == 3:
		edges := make([]float64, 3)
		if err := dset.Read(&edges); err != nil {
			return nil, err
		}
		for i, e := range edges {
			cell[i][i] = e
		}
	case len(dims) == 2 && dims[0] == 3 && dims[1] == 3:
		flat := make([]float64, 9)
		if err := dset.Read(&flat); err != nil {
			return nil, err
		}
		for i := range cell {
			copy(cell[i][:], flat[3*i:3*i+3])
		}
	case len(dims) == 2 && dims[1] == 3 && frame < int(dims[0]):
		edges := make([]float64, 3)
		if err := readRow(dset, dims, frame, &edges); err != nil {
			return nil, err
		}
		for i, e := range edges {
			cell[i][i] = e
		}
	case len(dims) == 3 && dims[1] == 3 && dims[2] == 3 && frame < int(dims[0]):
		flat := make([]float64, 9)
		if err := readRow(dset, dims, frame, &flat); err != nil {
			return nil, err
		}
		for i := range cell {
			copy(cell[i][:], flat[3*i:3*i+3])
		}
	default:
		return nil, fmt.Errorf("%s: %s", BadShape, boxPath)
	}
	return traj.NewLattice(cell), nil
}

//readObservables reads every scalar observable value for one frame.
//Observables that are not one-dimensional float series, or that end
//before this frame, are skipped rather than failing the frame.
func (s *nativeStore) readObservables(frame int) (map[string]float64, error) {
	out := make(map[string]float64)
	g, err := s.file.OpenGroup(observablesPath)
	if err != nil {
		return out, nil
	}
	defer g.Close()
	n, err := g.NumObjects()
	if err != nil {
		return out, nil
	}
	for i := uint(0); i < n; i++ {
		name := g.ObjectNameByIndex(i)
		if name == "" {
			continue
		}
		dset, dims, err := s.openDims(observablesPath + "/" + name + "/value")
		if err != nil {
			continue
		}
		if len(dims) == 1 && frame < int(dims[0]) {
			buf := make([]float64, 1)
			if err := readRow(dset, dims, frame, &buf); err == nil {
				out[name] = buf[0]
			}
		}
		dset.Close()
	}
	return out, nil
}
