package garment

// Canonical garment types. These are the values offered by the design form
// and the renderer dispatches on them ("裙" selects a flared lower section).
const (
	GarmentDress      = "连衣裙"
	GarmentShirt      = "衬衫"
	GarmentTShirt     = "T恤"
	GarmentPants      = "裤子"
	GarmentJeans      = "牛仔裤"
	GarmentCoat       = "外套"
	GarmentJacket     = "夹克"
	GarmentQipao      = "旗袍"
	GarmentSkirt      = "半身裙"
	GarmentTrenchCoat = "风衣"
	GarmentSuit       = "西装"
)

// Canonical neck and sleeve tokens.
const (
	NeckRound      = "圆领"
	NeckV          = "V 领"
	NeckStand      = "立领"
	NeckSquare     = "方领"
	NeckCollarless = "无领"

	SleeveNone         = "无袖"
	SleeveShort        = "短袖"
	SleeveThreeQuarter = "七分袖"
	SleeveLong         = "长袖"
)

// GarmentOptions lists the canonical garment types in form order.
var GarmentOptions = []string{
	GarmentDress, GarmentShirt, GarmentTShirt, GarmentPants, GarmentJeans,
	GarmentCoat, GarmentJacket, GarmentQipao, GarmentSkirt, GarmentTrenchCoat, GarmentSuit,
}

var colorTerms = newLongestFirstLexicon([]term{
	{"酒红", "#8B0000"},
	{"深蓝", "#003366"},
	{"藏青", "#001F3F"},
	{"米白", "#F5F5DC"},
	{"驼色", "#D2B48C"},
	{"粉红", "#FFB6C1"},
	{"浅蓝", "#87CEEB"},
	{"白色", "#FFFFFF"},
	{"黑色", "#000000"},
	{"红色", "#FF0000"},
	{"粉色", "#FFB6C1"},
	{"蓝色", "#007BFF"},
	{"绿色", "#28A745"},
	{"灰色", "#6C757D"},
	{"黄色", "#FFC107"},
	{"紫色", "#6F42C1"},
	{"白", "#FFFFFF"},
	{"黑", "#000000"},
	{"红", "#FF0000"},
	{"粉", "#FFB6C1"},
	{"蓝", "#007BFF"},
	{"绿", "#28A745"},
	{"灰", "#6C757D"},
	{"off-white", "#F5F5DC"},
	{"dark blue", "#003366"},
	{"wine red", "#8B0000"},
	{"burgundy", "#8B0000"},
	{"navy", "#001F3F"},
	{"beige", "#F5F5DC"},
	{"camel", "#D2B48C"},
	{"white", "#FFFFFF"},
	{"black", "#000000"},
	{"red", "#FF0000"},
	{"pink", "#FFB6C1"},
	{"blue", "#007BFF"},
	{"green", "#28A745"},
	{"grey", "#6C757D"},
	{"gray", "#6C757D"},
	{"yellow", "#FFC107"},
	{"purple", "#6F42C1"},
})

// garmentTerms is scanned in declaration order. More specific tokens come
// first: "t-shirt" before "shirt", "牛仔裤" before "裤子".
var garmentTerms = newOrderedLexicon([]term{
	{"连衣裙", GarmentDress},
	{"半身裙", GarmentSkirt},
	{"旗袍", GarmentQipao},
	{"衬衫", GarmentShirt},
	{"T恤", GarmentTShirt},
	{"牛仔裤", GarmentJeans},
	{"裤子", GarmentPants},
	{"风衣", GarmentTrenchCoat},
	{"夹克", GarmentJacket},
	{"外套", GarmentCoat},
	{"西装", GarmentSuit},
	{"长裙", GarmentDress},
	{"短裙", GarmentSkirt},
	{"裙子", GarmentDress},
	{"衬衣", GarmentShirt},
	{"t-shirt", GarmentTShirt},
	{"tshirt", GarmentTShirt},
	{"tee", GarmentTShirt},
	{"qipao", GarmentQipao},
	{"cheongsam", GarmentQipao},
	{"skirt", GarmentSkirt},
	{"trench coat", GarmentTrenchCoat},
	{"trench", GarmentTrenchCoat},
	{"blazer", GarmentSuit},
	{"suit", GarmentSuit},
})

// garmentSynonyms are the generic fallbacks tried after garmentTerms.
var garmentSynonyms = newOrderedLexicon([]term{
	{"dress", GarmentDress},
	{"dresses", GarmentDress},
	{"gown", GarmentDress},
	{"shirt", GarmentShirt},
	{"shirts", GarmentShirt},
	{"blouse", GarmentShirt},
	{"jacket", GarmentCoat},
	{"jackets", GarmentCoat},
	{"coat", GarmentCoat},
	{"coats", GarmentCoat},
	{"pants", GarmentPants},
	{"trousers", GarmentPants},
	{"jeans", GarmentPants},
})

var fabricTerms = newLongestFirstLexicon([]term{
	{"真丝", "真丝"},
	{"丝绸", "丝绸"},
	{"雪纺", "雪纺"},
	{"纯棉", "纯棉"},
	{"牛仔布", "牛仔布"},
	{"牛仔", "牛仔"},
	{"羊毛", "羊毛"},
	{"羊绒", "羊绒"},
	{"亚麻", "亚麻"},
	{"蕾丝", "蕾丝"},
	{"皮革", "皮革"},
	{"涤纶", "涤纶"},
	{"锦纶", "锦纶"},
	{"丝", "丝"},
	{"棉", "棉"},
	{"毛", "毛"},
	{"麻", "麻"},
	{"皮", "皮"},
	{"silk fabric", "silk fabric"},
	{"cotton fabric", "cotton fabric"},
	{"denim fabric", "denim fabric"},
	{"silk", "silk"},
	{"cotton", "cotton"},
	{"denim", "denim"},
	{"wool", "wool"},
	{"cashmere", "cashmere"},
	{"linen", "linen"},
	{"lace", "lace"},
	{"leather", "leather"},
	{"polyester", "polyester"},
	{"nylon", "nylon"},
	{"chiffon", "chiffon"},
})

var fabricPattern = fabricTerms.pattern()

var slimFit = family{FitSlim, []string{"修身", "紧身", "收腰", "slim", "fitted", "tight", "skinny"}}

var relaxedFit = family{FitRelaxed, []string{"宽松", "廓形", "oversize", "oversized", "relaxed", "loose", "baggy"}}

var regularFit = family{FitRegular, []string{"常规", "合身", "regular", "standard"}}

var neckFamilies = []family{
	{NeckV, []string{"v 领", "v领", "v字领", "v-neck", "v neck", "vneck"}},
	{NeckStand, []string{"立领", "stand collar", "mandarin collar"}},
	{NeckSquare, []string{"方领", "square neck", "square-neck"}},
	{NeckCollarless, []string{"无领", "collarless"}},
	{NeckRound, []string{"圆领", "round neck", "crew neck", "crewneck"}},
}

// sleeveFamilies are checked from shortest to longest sleeve.
var sleeveFamilies = []family{
	{SleeveNone, []string{"无袖", "sleeveless"}},
	{SleeveShort, []string{"短袖", "short sleeve", "short sleeves", "short-sleeve", "short-sleeved"}},
	{SleeveThreeQuarter, []string{"七分袖", "中袖", "three-quarter sleeve", "three quarter sleeve", "3/4 sleeve"}},
	{SleeveLong, []string{"长袖", "long sleeve", "long sleeves", "long-sleeve", "long-sleeved"}},
}

// Heuristic style tags derived from the overall feel of the description.
const (
	StyleLightFloating = "light_floating"
	StyleFormal        = "formal"
	StyleSporty        = "sporty"
)

var styleHeuristics = []family{
	{StyleLightFloating, []string{"飘逸", "轻薄", "透气", "flowy", "airy", "lightweight"}},
	{StyleFormal, []string{"正式", "礼服", "formal", "evening gown"}},
	{StyleSporty, []string{"运动", "sporty", "athletic"}},
}

var decorationFamilies = []family{
	{"荷叶边", []string{"荷叶边", "ruffle", "ruffles", "ruffled"}},
	{"泡泡袖", []string{"泡泡袖", "puff sleeve", "puff sleeves", "puff-sleeve"}},
	{"吊带", []string{"吊带", "halter", "spaghetti strap", "camisole"}},
	{"露背", []string{"露背", "open back", "open-back", "backless"}},
	{"开叉", []string{"开叉", "slit"}},
	{"印花", []string{"印花", "print", "printed"}},
	{"刺绣", []string{"刺绣", "embroidery", "embroidered"}},
	{"拼接", []string{"拼接", "paneling", "panelled", "patchwork"}},
	{"拉链", []string{"拉链", "zipper", "zip"}},
	{"扣子", []string{"扣子", "纽扣", "button", "buttons"}},
	{"口袋", []string{"口袋", "pocket", "pockets"}},
	{"褶皱", []string{"褶皱", "pleat", "pleats", "pleated"}},
}

// seamFamilies map fabric substrings to seam allowances in cm. Order is the
// lookup priority.
var seamFamilies = []struct {
	keys []string
	cm   float64
}{
	{[]string{"丝", "silk"}, 1.0},
	{[]string{"牛仔", "denim"}, 1.8},
	{[]string{"棉", "cotton"}, 1.5},
	{[]string{"毛", "羊绒", "wool", "cashmere"}, 1.6},
}
