package quiz

// Length количество вопросов в опросе.
const Length = 10

// Option вариант ответа и психотип, за который он голосует.
type Option struct {
	Category Category
	Text     string
}

// Question вопрос с вариантами ответа в порядке отображения.
type Question struct {
	Prompt  string
	Options []Option
}

// Has сообщает, есть ли у вопроса вариант для психотипа.
func (q Question) Has(c Category) bool {
	for _, o := range q.Options {
		if o.Category == c {
			return true
		}
	}
	return false
}

// QuestionAt возвращает вопрос по индексу. Для индекса вне диапазона возвращается первый вопрос.
func QuestionAt(i int) Question {
	if i < 0 || i >= Length {
		return questions[0]
	}
	return questions[i]
}

// Psychotype описывает результат опроса.
type Psychotype struct {
	Category    Category
	Label       string
	Garden      string
	Description string
	Image       string
}

// Describe возвращает описание психотипа.
func Describe(c Category) (Psychotype, bool) {
	p, ok := psychotypes[c]
	return p, ok
}

var psychotypes = map[Category]Psychotype{
	Kinesthetic: {
		Category: Kinesthetic,
		Label:    "кинестетик",
		Image:    "kinesthetic.png",
		Garden:   "«Сад объятий»",
		Description: ". В нем максимально комфортно и приятно находиться. " +
			"Здесь можно пройтись босиком теплому дереву террасной доски, " +
			"согретому на солнце природному камню или мягкой свежескошенной траве.\n\n" +
			"Идя мимо растительных композиций, можно ощущать руками касания нежных " +
			"колосков злаков или прикоснуться к хвойным растениям и ощутить их текстуру. " +
			"Можно собрать букет из свежесрезанных многолетних цветов и поставить их в вазу на стол.\n\n" +
			"Мягкая мебель на террасе не позволит пройти мимо, так и хочется присесть " +
			"и полюбоваться на красоту пейзажа вокруг. Мягкие подушки, плед создают дополнительный уют. " +
			"Свечи и элементы рукотворного декора создадут душевную атмосферу в вашем саду.",
	},
	Visual: {
		Category: Visual,
		Label:    "визуал",
		Image:    "visual.png",
		Garden:   "«Сад искусств»",
		Description: ", где есть яркие акценты, живые картины, нарисованные словно самой природой. " +
			"Акцентные цвета растений, формы и текстуры листьев создают непередаваемые эмоции, которые радуют глаз. " +
			"Сад – это место созерцания изящных изгибов дорожек, нависающих деревьев, " +
			"изучения сложных деталей и фактур всех материалов. " +
			"Силуэты деревьев, очертания лужаек и цветников, дополняют друг друга, " +
			"образуя гармоничную садовую композицию. Так и хочется сделать фотографию " +
			"или нарисовать картину вашего пейзажа.",
	},
	Audial: {
		Category: Audial,
		Label:    "аудиал",
		Image:    "audial.png",
		Garden:   "«Сад чувств»",
		Description: ", который состоит из множества тихих уголков и зеленых комнат. " +
			"Здесь вы сможете насладиться тишиной и покоем, прогуляться по плавным дорожкам, " +
			"послушать шелест листвы на деревьях, насладиться пением птиц и понаблюдать за колыханием злаков. " +
			"Многолетние растения в цветниках наполнят воздух приятной успокаивающей летней мелодией " +
			"и создадут атмосферу свежести и умиротворения, помогут отвлечься от городской суеты и шума.",
	},
}

var questions = [Length]Question{
	{
		Prompt: "За что вы цените жизнь за городом?",
		Options: []Option{
			{Kinesthetic, "Большая территория для игры с детьми и животными, много разных зон, большая парковка"},
			{Audial, "Хочется больше природы и не слышать соседей"},
			{Visual, "Возможность создать красивый сад с разными зонами отдыха, цветниками и деревьями"},
		},
	},
	{
		Prompt: "Какие материалы для дорожек вы предпочитаете?",
		Options: []Option{
			{Audial, "Натуральные каменные плиты, отсев, каменная крошка"},
			{Kinesthetic, "Тротуарная плитка, декинг"},
			{Visual, "Клинкерный кирпич, природный камень"},
		},
	},
	{
		Prompt: "Выберите группу растений, которые вам нравятся больше остальных?",
		Options: []Option{
			{Visual, "Клен, бересклет, магнолия, рябина, сосна ниваки, багряник, спирея, пузыреплодник"},
			{Audial, "Ива, осина, береза, вейник, молиния, осока, мискантус"},
			{Kinesthetic, "Сирень, роза ругоза, чубушник, гортензия, черемуха, мелисса, вербена"},
		},
	},
	{
		Prompt: "В какой зоне сада вы предпочтете провести свой вечер?",
		Options: []Option{
			{Kinesthetic, "В зоне барбекю или летней кухни"},
			{Audial, "В большой компании на патио под свет гирлянд и фонарей"},
			{Visual, "Костровая зона в компании 2-4 человек"},
		},
	},
	{
		Prompt: "Какую планировку сада вы выберите?",
		Options: []Option{
			{Audial, "Плавные природные линии, места отдыха с водными объектами, тихие зоны для бесед с друзьями"},
			{Visual, "Различные места отдыха с эффектными видовыми точками и живописным окрестным пейзажем"},
			{Kinesthetic, "Уютные зеленые комнаты, внутренний дворик, веранда, беседка, многочисленные островки отдыха"},
		},
	},
	{
		Prompt: "Опишите ваше утро",
		Options: []Option{
			{Kinesthetic, "Пью кофе сидя на мягком диване. " +
				"Сад наполнен ароматом аппетитных яблок, меня окружают растения необычных форм и фактур"},
			{Visual, "Прогуливаюсь по саду, любуясь яркими утренними цветами, росой на траве. " +
				"Лужайка ровная, обрамленная извилистыми дорожками идеально вписанными в ландшафт"},
			{Audial, "Сижу на террасе, слушаю пение птиц, играет приятная музыка"},
		},
	},
	{
		Prompt: "Как бы вы провели 2 часа свободного времени в саду?",
		Options: []Option{
			{Audial, "Полежу в шезлонге в тени деревьев, послушаю шелест листвы и звуки природы"},
			{Visual, "Проведу осмотр участка на предмет сорняков и разросшихся растений и приведу его в порядок"},
			{Kinesthetic, "Присмотрю в интернет-магазине декор для своего участка или смастерю его самостоятельно"},
		},
	},
	{
		Prompt: "Какую часть дня вы любите проводить в саду?",
		Options: []Option{
			{Kinesthetic, "Днем"},
			{Visual, "Вечером"},
			{Audial, "Утро"},
		},
	},
	{
		Prompt: "Как часто вы приглашаете друзей и большие компании?",
		Options: []Option{
			{Audial, "Каждую неделю и чаще"},
			{Kinesthetic, "Редко, может раз в несколько месяцев"},
			{Visual, "Пару раз в месяц"},
		},
	},
	{
		Prompt: "Какие ощущения вы хотите испытывать чаще в своем саду?",
		Options: []Option{
			{Visual, "Чувствуете себя свободно, наполняюсь энергией и силой"},
			{Audial, "Вам умиротворенно, легко, в полной безопасности – это мой мир"},
			{Kinesthetic, "Вам уютно, спокойно, комфортно"},
		},
	},
}
