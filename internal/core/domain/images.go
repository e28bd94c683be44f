package domain

import "fmt"

// ImageSet combines persisted and staged images under one primary flag.
// Indexes address persisted images first, then staged ones.
type ImageSet struct {
	Persisted []Image
	Staged    []StagedFile
}

// Len returns the combined image count
func (s *ImageSet) Len() int {
	return len(s.Persisted) + len(s.Staged)
}

// SetPrimary marks one image primary and clears the flag everywhere else
func (s *ImageSet) SetPrimary(index int) error {
	if index < 0 || index >= s.Len() {
		return fmt.Errorf("image index %d out of range", index)
	}
	for i := range s.Persisted {
		s.Persisted[i].IsPrimary = i == index
	}
	for i := range s.Staged {
		s.Staged[i].IsPrimary = len(s.Persisted)+i == index
	}
	return nil
}

// Remove deletes an image. If it was primary, the first remaining image
// (persisted before staged) becomes primary.
func (s *ImageSet) Remove(index int) error {
	if index < 0 || index >= s.Len() {
		return fmt.Errorf("image index %d out of range", index)
	}

	var wasPrimary bool
	if index < len(s.Persisted) {
		wasPrimary = s.Persisted[index].IsPrimary
		s.Persisted = append(s.Persisted[:index:index], s.Persisted[index+1:]...)
	} else {
		i := index - len(s.Persisted)
		wasPrimary = s.Staged[i].IsPrimary
		s.Staged = append(s.Staged[:i:i], s.Staged[i+1:]...)
	}

	if wasPrimary && s.Len() > 0 {
		return s.SetPrimary(0)
	}
	return nil
}

// PrimaryIndex returns the combined index of the primary image, or -1
func (s *ImageSet) PrimaryIndex() int {
	for i, img := range s.Persisted {
		if img.IsPrimary {
			return i
		}
	}
	for i, f := range s.Staged {
		if f.IsPrimary {
			return len(s.Persisted) + i
		}
	}
	return -1
}

// Label returns a display label for the combined index
func (s *ImageSet) Label(index int) string {
	if index < len(s.Persisted) {
		return s.Persisted[index].Filename
	}
	return s.Staged[index-len(s.Persisted)].Filename() + " (staged)"
}
