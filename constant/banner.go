package constant

// Banner is printed at the top of the root command's long help.
const Banner = `
 ┌─┐┬─┐┌─┐┌─┐┌─┐┌┐┌┌┬┐┌─┐┬─┐
 ├─┘├┬┘├┤ └─┐├┤ │││ │ ├┤ ├┬┘
 ┴  ┴└─└─┘└─┘└─┘┘└┘ ┴ └─┘┴└─`
