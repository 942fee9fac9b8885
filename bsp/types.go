package bsp

// On disk layout of the vanilla level lumps. All values are little endian.

type mapVertex struct {
	X int16
	Y int16
}

type mapLinedef struct {
	V1      uint16
	V2      uint16
	Flags   uint16
	Special uint16
	Tag     uint16
	Front   uint16
	Back    uint16 // noSide for one sided lines
}

type mapSidedef struct {
	XOffset int16
	YOffset int16
	Top     [8]byte
	Bottom  [8]byte
	Mid     [8]byte
	Sector  uint16
}

type mapSector struct {
	FloorHeight   int16
	CeilingHeight int16
	FloorPic      [8]byte
	CeilingPic    [8]byte
	LightLevel    int16
	Special       int16
	Tag           int16
}

type mapSeg struct {
	V1     uint16
	V2     uint16
	Angle  int16
	Line   uint16
	Side   int16 // 0 front, 1 back
	Offset int16
}

type mapSubsector struct {
	NumSegs  uint16
	FirstSeg uint16
}

type mapNode struct {
	X        int16
	Y        int16
	Dx       int16
	Dy       int16
	BBox     [2][4]int16 // top, bottom, left, right
	Children [2]uint16   // nodeLeaf set for subsectors
}

type mapThing struct {
	X     int16
	Y     int16
	Angle int16
	Type  int16
	Flags int16
}

const (
	noSide   = 0xFFFF
	nodeLeaf = 0x8000
)
