package logutil

import "testing"

func TestRedactCPF(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "", want: ""},
		{in: `{"cpf":["52998224725 already exists"]}`, want: `{"cpf":["***.***.***-25 already exists"]}`},
		{in: "cpf 529.982.247-25 taken", want: "cpf ***.***.***-25 taken"},
		{in: "id 12345 is short", want: "id 12345 is short"},
		{in: "phone 5511987654321 kept", want: "phone 5511987654321 kept"},
		{in: "two 11144477735 and 52998224725", want: "two ***.***.***-35 and ***.***.***-25"},
		{in: "cpf52998224725", want: "cpf***.***.***-25"},
		{in: "cpf_52998224725", want: "cpf_***.***.***-25"},
		{in: "52998224725x", want: "***.***.***-25x"},
		{in: "id=529.982.247-25;", want: "id=***.***.***-25;"},
		{in: "52998224725,11144477735", want: "***.***.***-25,***.***.***-35"},
		{in: "x529982247255", want: "x529982247255"},
	}
	for _, tt := range tests {
		if got := RedactCPF(tt.in); got != tt.want {
			t.Errorf("RedactCPF(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
