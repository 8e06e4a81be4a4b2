package postgres

import "strconv"

// formatVector renders a float32 slice as a pgvector literal, e.g.
// "[0.25,-1,0.5]". Values use the shortest round-tripping representation
// so the stored vector is bit-identical to the one embedded.
func formatVector(vec []float32) string {
	buf := make([]byte, 0, len(vec)*10+2)
	buf = append(buf, '[')
	for i, v := range vec {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
	}
	buf = append(buf, ']')
	return string(buf)
}
