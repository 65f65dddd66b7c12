package lexicon

// Prefixes lists the Mandarin initials. The empty string is the zero initial.
var Prefixes = []string{
	"", "b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h",
	"j", "q", "x", "zh", "ch", "sh", "r", "z", "c", "s", "y", "w",
}

// Endings lists the Mandarin finals, including the contracted spellings
// (ui, iu, un, ue) that appear in written pinyin.
var Endings = []string{
	"a", "o", "e", "i", "u", "ü",
	"ai", "ei", "ui", "ao", "ou", "iu",
	"ie", "ue", "üe", "er",
	"an", "en", "in", "un", "ün",
	"ang", "eng", "ing", "ong",
	"ia", "iao", "ian", "iang", "iong", "iou",
	"ua", "uo", "uai", "uan", "uang", "uei", "uen", "ueng", "üan",
}

// Tones lists tones 1-4 and the neutral tone 5.
var Tones = []int{1, 2, 3, 4, 5}

// builtin is the default table of valid syllables with a spoken form each.
var builtin = []Entry{
	{Form: "妈", Pinyin: "ma", Tone: 1},
	{Form: "麻", Pinyin: "ma", Tone: 2},
	{Form: "马", Pinyin: "ma", Tone: 3},
	{Form: "骂", Pinyin: "ma", Tone: 4},
	{Form: "吗", Pinyin: "ma", Tone: 5},

	{Form: "爸", Pinyin: "ba", Tone: 4},
	{Form: "八", Pinyin: "ba", Tone: 1},
	{Form: "把", Pinyin: "ba", Tone: 3},

	{Form: "他", Pinyin: "ta", Tone: 1},
	{Form: "她", Pinyin: "ta", Tone: 1},
	{Form: "它", Pinyin: "ta", Tone: 1},
	{Form: "踏", Pinyin: "ta", Tone: 4},

	{Form: "大", Pinyin: "da", Tone: 4},
	{Form: "打", Pinyin: "da", Tone: 3},
	{Form: "答", Pinyin: "da", Tone: 2},

	{Form: "你", Pinyin: "ni", Tone: 3},
	{Form: "泥", Pinyin: "ni", Tone: 2},
	{Form: "逆", Pinyin: "ni", Tone: 4},

	{Form: "我", Pinyin: "wo", Tone: 3},
	{Form: "握", Pinyin: "wo", Tone: 4},
	{Form: "卧", Pinyin: "wo", Tone: 4},

	{Form: "好", Pinyin: "hao", Tone: 3},
	{Form: "豪", Pinyin: "hao", Tone: 2},
	{Form: "号", Pinyin: "hao", Tone: 4},
	{Form: "毫", Pinyin: "hao", Tone: 2},

	{Form: "来", Pinyin: "lai", Tone: 2},
	{Form: "赖", Pinyin: "lai", Tone: 4},

	{Form: "去", Pinyin: "qu", Tone: 4},
	{Form: "取", Pinyin: "qu", Tone: 3},
	{Form: "趣", Pinyin: "qu", Tone: 4},

	{Form: "是", Pinyin: "shi", Tone: 4},
	{Form: "十", Pinyin: "shi", Tone: 2},
	{Form: "石", Pinyin: "shi", Tone: 2},
	{Form: "诗", Pinyin: "shi", Tone: 1},

	{Form: "中", Pinyin: "zhong", Tone: 1},
	{Form: "种", Pinyin: "zhong", Tone: 3},
	{Form: "重", Pinyin: "zhong", Tone: 4},

	{Form: "人", Pinyin: "ren", Tone: 2},
	{Form: "认", Pinyin: "ren", Tone: 4},
	{Form: "仁", Pinyin: "ren", Tone: 2},

	{Form: "一", Pinyin: "yi", Tone: 1},
	{Form: "二", Pinyin: "er", Tone: 4},
	{Form: "三", Pinyin: "san", Tone: 1},
	{Form: "四", Pinyin: "si", Tone: 4},
	{Form: "五", Pinyin: "wu", Tone: 3},
	{Form: "六", Pinyin: "liu", Tone: 4},
	{Form: "七", Pinyin: "qi", Tone: 1},
	{Form: "九", Pinyin: "jiu", Tone: 3},

	{Form: "天", Pinyin: "tian", Tone: 1},
	{Form: "地", Pinyin: "di", Tone: 4},
	{Form: "山", Pinyin: "shan", Tone: 1},
	{Form: "水", Pinyin: "shui", Tone: 3},
	{Form: "火", Pinyin: "huo", Tone: 3},
	{Form: "木", Pinyin: "mu", Tone: 4},
	{Form: "金", Pinyin: "jin", Tone: 1},
	{Form: "土", Pinyin: "tu", Tone: 3},

	{Form: "吃", Pinyin: "chi", Tone: 1},
	{Form: "喝", Pinyin: "he", Tone: 1},
	{Form: "看", Pinyin: "kan", Tone: 4},
	{Form: "听", Pinyin: "ting", Tone: 1},
	{Form: "说", Pinyin: "shuo", Tone: 1},
	{Form: "读", Pinyin: "du", Tone: 2},
	{Form: "写", Pinyin: "xie", Tone: 3},

	{Form: "今", Pinyin: "jin", Tone: 1},
	{Form: "明", Pinyin: "ming", Tone: 2},
	{Form: "昨", Pinyin: "zuo", Tone: 2},
	{Form: "年", Pinyin: "nian", Tone: 2},
	{Form: "月", Pinyin: "yue", Tone: 4},
	{Form: "日", Pinyin: "ri", Tone: 4},

	{Form: "白", Pinyin: "bai", Tone: 2},
	{Form: "黑", Pinyin: "hei", Tone: 1},
	{Form: "红", Pinyin: "hong", Tone: 2},
	{Form: "绿", Pinyin: "lü", Tone: 4},
	{Form: "蓝", Pinyin: "lan", Tone: 2},
	{Form: "黄", Pinyin: "huang", Tone: 2},

	{Form: "小", Pinyin: "xiao", Tone: 3},
	{Form: "高", Pinyin: "gao", Tone: 1},
	{Form: "低", Pinyin: "di", Tone: 1},
	{Form: "长", Pinyin: "chang", Tone: 2},
	{Form: "短", Pinyin: "duan", Tone: 3},

	{Form: "东", Pinyin: "dong", Tone: 1},
	{Form: "西", Pinyin: "xi", Tone: 1},
	{Form: "南", Pinyin: "nan", Tone: 2},
	{Form: "北", Pinyin: "bei", Tone: 3},

	{Form: "家", Pinyin: "jia", Tone: 1},
	{Form: "学", Pinyin: "xue", Tone: 2},
	{Form: "校", Pinyin: "xiao", Tone: 4},
	{Form: "工", Pinyin: "gong", Tone: 1},
	{Form: "作", Pinyin: "zuo", Tone: 4},

	{Form: "爱", Pinyin: "ai", Tone: 4},
	{Form: "想", Pinyin: "xiang", Tone: 3},
	{Form: "知", Pinyin: "zhi", Tone: 1},
	{Form: "道", Pinyin: "dao", Tone: 4},
	{Form: "会", Pinyin: "hui", Tone: 4},
	{Form: "能", Pinyin: "neng", Tone: 2},

	{Form: "什", Pinyin: "shen", Tone: 2},
	{Form: "么", Pinyin: "me", Tone: 5},
	{Form: "哪", Pinyin: "na", Tone: 3},
	{Form: "里", Pinyin: "li", Tone: 3},
	{Form: "谁", Pinyin: "shei", Tone: 2},
	{Form: "怎", Pinyin: "zen", Tone: 3},
	{Form: "样", Pinyin: "yang", Tone: 4},

	{Form: "很", Pinyin: "hen", Tone: 3},
	{Form: "太", Pinyin: "tai", Tone: 4},
	{Form: "真", Pinyin: "zhen", Tone: 1},
	{Form: "非", Pinyin: "fei", Tone: 1},
	{Form: "常", Pinyin: "chang", Tone: 2},

	{Form: "不", Pinyin: "bu", Tone: 4},
	{Form: "没", Pinyin: "mei", Tone: 2},
	{Form: "有", Pinyin: "you", Tone: 3},
	{Form: "也", Pinyin: "ye", Tone: 3},
	{Form: "都", Pinyin: "dou", Tone: 1},
	{Form: "还", Pinyin: "hai", Tone: 2},
	{Form: "就", Pinyin: "jiu", Tone: 4},
	{Form: "只", Pinyin: "zhi", Tone: 3},
	{Form: "可", Pinyin: "ke", Tone: 3},
	{Form: "以", Pinyin: "yi", Tone: 3},

	{Form: "在", Pinyin: "zai", Tone: 4},
	{Form: "上", Pinyin: "shang", Tone: 4},
	{Form: "下", Pinyin: "xia", Tone: 4},
	{Form: "前", Pinyin: "qian", Tone: 2},
	{Form: "后", Pinyin: "hou", Tone: 4},
	{Form: "左", Pinyin: "zuo", Tone: 3},
	{Form: "右", Pinyin: "you", Tone: 4},
	{Form: "旁", Pinyin: "pang", Tone: 2},

	{Form: "开", Pinyin: "kai", Tone: 1},
	{Form: "关", Pinyin: "guan", Tone: 1},
	{Form: "进", Pinyin: "jin", Tone: 4},
	{Form: "出", Pinyin: "chu", Tone: 1},
	{Form: "走", Pinyin: "zou", Tone: 3},
	{Form: "跑", Pinyin: "pao", Tone: 3},
	{Form: "飞", Pinyin: "fei", Tone: 1},
	{Form: "坐", Pinyin: "zuo", Tone: 4},
	{Form: "站", Pinyin: "zhan", Tone: 4},
	{Form: "躺", Pinyin: "tang", Tone: 3},
}
