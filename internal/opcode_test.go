package internal

import (
	"errors"
	"testing"
)

func TestDecodeOperations(t *testing.T) {
	tests := []struct {
		word uint16
		want Op
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x1234, OpJp},
		{0x2ABC, OpCall},
		{0x3A7F, OpSeByte},
		{0x4C01, OpSneByte},
		{0x5120, OpSeReg},
		{0x6F42, OpLdByte},
		{0x7801, OpAddByte},
		{0x8120, OpLdReg},
		{0x8121, OpOr},
		{0x8122, OpAnd},
		{0x8123, OpXor},
		{0x8124, OpAddReg},
		{0x8125, OpSub},
		{0x8126, OpShr},
		{0x8127, OpSubn},
		{0x812E, OpShl},
		{0x9340, OpSneReg},
		{0xA123, OpLdI},
		{0xB456, OpJpV0},
		{0xC7FF, OpRnd},
		{0xD125, OpDrw},
		{0xE19E, OpSkp},
		{0xE2A1, OpSknp},
		{0xF107, OpLdVxDT},
		{0xF20A, OpLdKey},
		{0xF315, OpLdDTVx},
		{0xF418, OpLdSTVx},
		{0xF51E, OpAddI},
		{0xF629, OpLdFont},
		{0xF733, OpLdBCD},
		{0xF855, OpStoreV},
		{0xF965, OpLoadV},
	}

	for _, test := range tests {
		inst, err := Decode(test.word)
		if err != nil {
			t.Errorf("Decode(%04X): unexpected error: %v", test.word, err)
			continue
		}
		if inst.Op != test.want {
			t.Errorf("Decode(%04X): want op %d, have %d", test.word, test.want, inst.Op)
		}
	}
}

func TestDecodeFields(t *testing.T) {
	inst, err := Decode(0xD12F)
	if err != nil {
		t.Fatal(err)
	}
	if inst.X != 0x1 || inst.Y != 0x2 || inst.N != 0xF || inst.KK != 0x2F || inst.NNN != 0x12F {
		t.Errorf("Decode(D12F): bad fields: %+v", inst)
	}

	inst, err = Decode(0x3A7C)
	if err != nil {
		t.Fatal(err)
	}
	if inst.X != 0xA || inst.Y != 0x7 || inst.N != 0xC || inst.KK != 0x7C || inst.NNN != 0xA7C {
		t.Errorf("Decode(3A7C): bad fields: %+v", inst)
	}
}

func TestDecodeUnknown(t *testing.T) {
	words := []uint16{
		0x0000, // SYS, unsupported
		0x00FF,
		0x5121, // 5xy_ with nonzero low nibble
		0x8128,
		0x812F,
		0x9341,
		0xE1FF,
		0xF0FF,
	}

	for _, word := range words {
		_, err := Decode(word)
		if err == nil {
			t.Errorf("Decode(%04X): expected an error", word)
			continue
		}
		var unknown *UnknownOpcodeError
		if !errors.As(err, &unknown) {
			t.Errorf("Decode(%04X): want UnknownOpcodeError, have %T", word, err)
			continue
		}
		if unknown.Opcode != word {
			t.Errorf("Decode(%04X): error carries opcode %04X", word, unknown.Opcode)
		}
	}
}
