package markup

// BlockKind identifies the variant of a Block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockList:
		return "list"
	default:
		return "paragraph"
	}
}

// Block is one structural unit of a document. Text held by a block is raw:
// markers are stripped but inline markup is still unprocessed.
type Block interface {
	Kind() BlockKind
}

// Heading is a level 1..3 heading line.
type Heading struct {
	Level int
	Text  string
}

func (Heading) Kind() BlockKind { return BlockHeading }

// List is a run of contiguous unordered list items.
type List struct {
	Items []string
}

func (List) Kind() BlockKind { return BlockList }

// Paragraph is a run of contiguous plain lines.
type Paragraph struct {
	Lines []string
}

func (Paragraph) Kind() BlockKind { return BlockParagraph }

// Text returns the paragraph lines joined by a single space.
func (p Paragraph) Text() string {
	return joinParagraphLines(p.Lines)
}
