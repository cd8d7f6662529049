// Package tracker implements Trackers, which accumulate per-timestep
// data during a run and persist it to disk once the run has finished.
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	"gridrl/timestep"
)

// Tracker caches data from every TimeStep it is shown. Save writes the
// accumulated data to disk, usually after the run has completed.
type Tracker interface {
	Track(t timestep.TimeStep)
	Save() error
}

// LoadData loads the data saved by a Tracker.
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open data file: %v", err)
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode data: %v", err)
	}
	return data, nil
}

// save gob-encodes data to filename, shared by the concrete trackers.
func save(filename string, data []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not open save file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("could not encode data: %v", err)
	}
	return nil
}
