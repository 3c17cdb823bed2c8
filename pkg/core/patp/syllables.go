package patp

import "strings"

// prefixSource and suffixSource hold the 256 three-letter prefix and suffix
// syllables in canonical order. A syllable's rank is its position here.
const (
	prefixSource = "" +
		"dozmarbinwansamlitsighidfidlissogdirwacsabwissib" +
		"rigsoldopmodfoglidhopdardorlorhodfolrintogsilmir" +
		"holpaslacrovlivdalsatlibtabhanticpidtorbolfosdot" +
		"losdilforpilramtirwintadbicdifrocwidbisdasmidlop" +
		"rilnardapmolsanlocnovsitnidtipsicropwitnatpanmin" +
		"ritpodmottamtolsavposnapnopsomfinfonbanmorworsip" +
		"ronnorbotwicsocwatdolmagpicdavbidbaltimtasmallig" +
		"sivtagpadsaldivdactansidfabtarmonranniswolmispal" +
		"lasdismaprabtobrollatlonnodnavfignomnibpagsopral" +
		"bilhaddocridmocpacravripfaltodtiltinhapmicfanpat" +
		"taclabmogsimsonpinlomrictapfirhasbosbatpochactid" +
		"havsaplindibhosdabbitbarracparloddosbortochilmac" +
		"tomdigfilfasmithobharmighinradmashalraglagfadtop" +
		"mophabnilnosmilfopfamdatnoldinhatnacrisfotribhoc" +
		"nimlarfitwalrapsarnalmoslandondanladdovrivbacpol" +
		"laptalpitnambonrostonfodponsovnocsorlavmatmipfip"

	suffixSource = "" +
		"zodnecbudwessevpersutletfulpensytdurwepserwylsun" +
		"rypsyxdyrnuphebpeglupdepdysputlughecryttyvsydnex" +
		"lunmeplutseppesdelsulpedtemledtulmetwenbynhexfeb" +
		"pyldulhetmevruttylwydtepbesdexsefwycburderneppur" +
		"rysrebdennutsubpetrulsynregtydsupsemwynrecmegnet" +
		"secmulnymtevwebsummutnyxrextebfushepbenmuswyxsym" +
		"selrucdecwexsyrwetdylmynmesdetbetbeltuxtugmyrpel" +
		"syptermebsetdutdegtexsurfeltudnuxruxrenwytnubmed" +
		"lytdusnebrumtynseglyxpunresredfunrevrefmectedrus" +
		"bexlebduxrynnumpyxrygryxfeptyrtustyclegnemfermer" +
		"tenlusnussyltecmexpubrymtucfyllepdebbermughuttun" +
		"bylsudpemdevlurdefbusbeprunmelpexdytbyttyplevmyl" +
		"wedducfurfexnulluclennerlexrupnedlecrydlydfenwel" +
		"nydhusrelrudneshesfetdesretdunlernyrsebhulryllud" +
		"remlysfynwerrycsugnysnyllyndyndemluxfedsedbecmun" +
		"lyrtesmudnytbyrsenwegfyrmurtelreptegpecnelnevfes"
)

// SyllableCount is the number of syllables in each table.
const SyllableCount = 256

var (
	prefixes    = splitSource(prefixSource)
	suffixes    = splitSource(suffixSource)
	prefixRanks = rankIndex(prefixes)
	suffixRanks = rankIndex(suffixes)
)

func splitSource(src string) [SyllableCount]string {
	var out [SyllableCount]string
	for i := range out {
		out[i] = src[i*SyllableLength : (i+1)*SyllableLength]
	}
	return out
}

func rankIndex(table [SyllableCount]string) map[string]int {
	m := make(map[string]int, len(table))
	for i, s := range table {
		m[s] = i
	}
	return m
}

// PrefixRank returns the position of syl in the prefix table, or -1.
func PrefixRank(syl string) int {
	return rank(prefixRanks, syl)
}

// SuffixRank returns the position of syl in the suffix table, or -1.
func SuffixRank(syl string) int {
	return rank(suffixRanks, syl)
}

// IsPrefix reports whether syl is a known prefix syllable.
func IsPrefix(syl string) bool { return PrefixRank(syl) >= 0 }

// IsSuffix reports whether syl is a known suffix syllable.
func IsSuffix(syl string) bool { return SuffixRank(syl) >= 0 }

// Prefix returns the prefix syllable at rank i.
func Prefix(i int) string { return prefixes[i] }

// Suffix returns the suffix syllable at rank i.
func Suffix(i int) string { return suffixes[i] }

func rank(index map[string]int, syl string) int {
	if r, ok := index[strings.ToLower(syl)]; ok {
		return r
	}
	return -1
}
