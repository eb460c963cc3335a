package shader

import "testing"

func TestInclude(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		shared string
		want   string
	}{
		{
			name:   "after version",
			src:    "#version 410 core\nvoid main() {}\n",
			shared: "float f();",
			want:   "#version 410 core\nfloat f();\nvoid main() {}\n",
		},
		{
			name:   "leading blank lines",
			src:    "\n#version 410 core\nvoid main() {}",
			shared: "float f();\n",
			want:   "\n#version 410 core\nfloat f();\nvoid main() {}",
		},
		{
			name:   "no version",
			src:    "void main() {}",
			shared: "float f();",
			want:   "float f();\nvoid main() {}",
		},
		{
			name:   "version only",
			src:    "#version 410 core",
			shared: "float f();",
			want:   "#version 410 core\nfloat f();\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Include(tt.src, tt.shared); got != tt.want {
				t.Errorf("Include() = %q, want %q", got, tt.want)
			}
		})
	}
}
