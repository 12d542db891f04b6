package feature

type Vector []float64

func (v Vector) Dimensions() int {
	return len(v)
}

func (v Vector) Dim(idx int) float64 {
	return v[idx]
}

func (v Vector) Points() []float64 {
	return v
}

func (v Vector) Copy() Vector {
	var v1 = make(Vector, len(v))
	copy(v1, v)
	return v1
}

func (v Vector) Equal(vec Vector) bool {
	if len(v) != len(vec) {
		return false
	}
	for i, value := range v {
		if vec[i] != value {
			return false
		}
	}
	return true
}
